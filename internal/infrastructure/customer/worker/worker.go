package worker

import (
	"context"
	"time"

	domcustomer "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	domoutbox "github.com/Zhima-Mochi/customer-events/internal/domain/outbox"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
	workerpresentation "github.com/Zhima-Mochi/customer-events/internal/presentation/worker"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	workerService = "customer-audit-worker"
	spanPrefix    = "Worker."
)

// Worker writes an audit entry for every customer event that reaches the bus.
type Worker struct {
	subscriber domoutbox.Subscriber
	tel        observability.Observability

	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

func New(subscriber domoutbox.Subscriber, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &Worker{
		subscriber:   subscriber,
		tel:          tel,
		log:          tel.Logger().With(observability.F("service", workerService)),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil {
		return
	}
	w.subscriber.Subscribe(domcustomer.EventSaved, w.handleSaved)
	w.subscriber.Subscribe(domcustomer.EventDeleted, w.handleDeleted)
}

func (w *Worker) handleSaved(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domcustomer.SavedEvent)
	if !ok {
		w.count("customer.worker.saved", "ignored")
		return nil
	}
	w.audit(ctx, "customer.worker.saved", "CustomerSaved", e.EventName(), evt.CustomerID, evt.Name, evt.OccurredAt)
	return nil
}

func (w *Worker) handleDeleted(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domcustomer.DeletedEvent)
	if !ok {
		w.count("customer.worker.deleted", "ignored")
		return nil
	}
	w.audit(ctx, "customer.worker.deleted", "CustomerDeleted", e.EventName(), evt.CustomerID, evt.Name, evt.OccurredAt)
	return nil
}

func (w *Worker) audit(ctx context.Context, useCase, spanName, event, customerID, name string, occurredAt time.Time) {
	ctx, span := w.tel.Tracer().Start(ctx, spanPrefix+spanName,
		attribute.String("use_case", useCase),
		attribute.String("event", event),
		attribute.String("customer.id", customerID),
	)
	defer span.End()
	start := time.Now()

	sc := trace.SpanContextFromContext(ctx)
	ctx = workerpresentation.WithEventContext(ctx, w.log, w.tel, sc.TraceID(), sc.SpanID(), map[string]string{
		"use_case": useCase,
		"event":    event,
	})

	workerpresentation.Logger(ctx, w.log).Info("customer_audit",
		observability.F("customer_id", customerID),
		observability.F("customer_name", name),
		observability.F("occurred_at", occurredAt),
		observability.F("lag_seconds", time.Since(occurredAt).Seconds()),
	)

	span.SetStatus(codes.Ok, "OK")
	w.observe(useCase, "success", time.Since(start).Seconds())
}

func (w *Worker) count(useCase, outcome string) {
	w.reqCounter.Add(1,
		observability.L("use_case", useCase),
		observability.L("outcome", outcome),
	)
}

func (w *Worker) observe(useCase string, outcome string, latencySeconds float64) {
	w.count(useCase, outcome)
	w.durHistogram.Observe(latencySeconds,
		observability.L("use_case", useCase),
	)
}
