package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appcustomer "github.com/Zhima-Mochi/customer-events/internal/application/customer"
	"github.com/Zhima-Mochi/customer-events/internal/config"
	auditworker "github.com/Zhima-Mochi/customer-events/internal/infrastructure/customer/worker"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/id"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/listener"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/customer-events/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/redisstore"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
	"github.com/Zhima-Mochi/customer-events/internal/pkg/logging"
	httppresentation "github.com/Zhima-Mochi/customer-events/internal/presentation/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v\n", err)
	}

	baseLogger := logging.MustNewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		LogFile: cfg.LogFile,
		Debug:   cfg.Debug,
	})
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := zaplogger.New(logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID))

	counters, histograms := prometrics.RegisterDefaults(prometrics.New(prometheus.DefaultRegisterer, "", ""))
	tel := infraobs.New(
		infraobs.WithTracer(oteltrace.New(cfg.ServiceName)),
		infraobs.WithLogger(zaplogger.New(baseLogger)),
		infraobs.WithCounters(counters),
		infraobs.WithHistograms(histograms),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Built on the process-wide registry so appcustomer.AddListener and
	// service.AddListener feed the same listener list.
	service := appcustomer.NewService(
		memory.NewCustomerRepository(),
		appcustomer.DefaultRegistry(),
		id.NewUUIDGenerator(),
		tel,
	)

	if cfg.Demo {
		if err := runDemo(ctx, service, os.Stdout); err != nil {
			systemLogger.Error("demo_failed", observability.F("error", err))
			os.Exit(1)
		}
		return
	}

	bus := outbox.NewBus(tel.Logger(), outbox.Options{
		QueueSize:      cfg.Bus.QueueSize,
		Concurrency:    cfg.Bus.Concurrency,
		HandlerTimeout: cfg.Bus.HandlerTimeout,
	})
	bus.Start(context.Background())

	auditworker.New(bus, tel).Start()

	if cfg.Redis.Enabled() {
		rdb, err := redisstore.NewConnection(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			systemLogger.Error("redis_connect_failed", observability.F("error", err))
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()
		redisstore.NewRelay(rdb, cfg.Redis.ChannelPrefix, tel).Start(bus)
		systemLogger.Info("redis_relay_enabled", observability.F("addr", cfg.Redis.Addr))
	}

	service.AddListener(listener.NewLogging(tel.Logger()))
	service.AddListener(listener.NewMetrics(tel.Metrics()))
	appcustomer.AddListener(listener.NewForwarder(bus, tel.Logger(), cfg.Bus.PublishTimeout))

	handler := httppresentation.NewHandler(service, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		systemLogger.Info("http_server_start",
			observability.F("addr", server.Addr),
			observability.F("listeners", service.Listeners().Len()),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error", observability.F("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error", observability.F("error", err))
	} else {
		systemLogger.Info("http_server_stopped")
	}
	bus.Stop(shutdownCtx)
}
