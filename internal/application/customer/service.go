package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
	"github.com/Zhima-Mochi/customer-events/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	customerService = "customer-service"
	useCaseSave     = "customer.save"
	useCaseDelete   = "customer.delete"
	useCaseGet      = "customer.get"
	spanPrefix      = "UC."
)

var (
	ErrNotFound   = domain.ErrNotFound
	ErrValidation = errors.New("validation")
	ErrRepository = errors.New("customer: repository failure")
)

// Service stores customers and notifies the registered listeners after each save or delete.
type Service struct {
	repo     domain.Repository
	registry *Registry
	idGen    IDGenerator
	tracer   observability.Tracer

	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

// NewService wires the service. A nil registry gets a private one; pass
// DefaultRegistry() to share listeners with the package-level AddListener.
func NewService(
	repo domain.Repository,
	registry *Registry,
	idGen IDGenerator,
	tel observability.Observability,
) *Service {
	if registry == nil {
		registry = NewRegistry()
	}
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()

	return &Service{
		repo:         repo,
		registry:     registry,
		idGen:        idGen,
		tracer:       tel.Tracer(),
		log:          tel.Logger().With(observability.F("service", customerService)),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
	}
}

// AddListener registers l on the service's registry.
func (s *Service) AddListener(l domain.Listener) {
	s.registry.AddListener(l)
}

// Listeners exposes the registry the service notifies.
func (s *Service) Listeners() *Registry {
	return s.registry
}

type SaveInput struct {
	// ID selects the customer to update; empty creates a new customer.
	ID   string
	Name string
}

// Save creates or renames a customer and then notifies listeners with the stored value.
func (s *Service) Save(ctx context.Context, in SaveInput) (_ *domain.Customer, err error) {
	ctx, run := s.begin(ctx, useCaseSave, "SaveCustomer",
		attribute.String("customer.id", in.ID),
	)
	defer func() {
		if r := recover(); r != nil {
			run.fail("LISTENER_PANIC")
			s.finish(ctx, run, fmt.Errorf("listener panic: %v", r))
			panic(r)
		}
		s.finish(ctx, run, err)
	}()

	if strings.TrimSpace(in.Name) == "" {
		run.fail("NAME_REQUIRED")
		return nil, newValidation(domain.ErrInvalidName)
	}
	if err := ctx.Err(); err != nil {
		run.fail("CONTEXT_CANCELED")
		return nil, err
	}

	var entity *domain.Customer
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = s.idGen.NewID()
	} else {
		existing, repoErr := s.repo.Get(ctx, id)
		switch {
		case repoErr == nil:
			entity = existing
		case errors.Is(repoErr, domain.ErrNotFound):
			// create below
		default:
			run.fail("REPO_LOOKUP_FAILED")
			return nil, wrapRepositoryError(repoErr)
		}
	}

	created := entity == nil
	if created {
		entity, err = domain.New(id, in.Name)
	} else {
		err = entity.Rename(in.Name)
	}
	if err != nil {
		run.fail("DOMAIN_CONSTRUCTION_FAILED")
		return nil, newValidation(err)
	}

	if err := s.repo.Save(ctx, entity); err != nil {
		run.fail("REPO_SAVE_FAILED")
		return nil, wrapRepositoryError(err)
	}

	run.customerID = entity.ID
	run.span.SetAttributes(
		attribute.String("customer.id", entity.ID),
		attribute.Bool("customer.created", created),
	)

	s.registry.NotifySaved(ctx, *entity.Clone())
	run.span.AddEvent(domain.EventSaved,
		trace.WithAttributes(attribute.Int("listeners", s.registry.Len())),
	)

	return entity, nil
}

// Delete removes a customer and notifies listeners with the removed value.
func (s *Service) Delete(ctx context.Context, id string) (_ *domain.Customer, err error) {
	ctx, run := s.begin(ctx, useCaseDelete, "DeleteCustomer",
		attribute.String("customer.id", id),
	)
	defer func() {
		if r := recover(); r != nil {
			run.fail("LISTENER_PANIC")
			s.finish(ctx, run, fmt.Errorf("listener panic: %v", r))
			panic(r)
		}
		s.finish(ctx, run, err)
	}()

	if strings.TrimSpace(id) == "" {
		run.fail("ID_REQUIRED")
		return nil, newValidation(domain.ErrInvalidID)
	}
	if err := ctx.Err(); err != nil {
		run.fail("CONTEXT_CANCELED")
		return nil, err
	}

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		run.fail("REPO_LOOKUP_FAILED")
		return nil, wrapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		run.fail("REPO_DELETE_FAILED")
		return nil, wrapRepositoryError(err)
	}
	run.customerID = entity.ID

	s.registry.NotifyDeleted(ctx, *entity.Clone())
	run.span.AddEvent(domain.EventDeleted,
		trace.WithAttributes(attribute.Int("listeners", s.registry.Len())),
	)

	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (_ *domain.Customer, err error) {
	ctx, run := s.begin(ctx, useCaseGet, "GetCustomer",
		attribute.String("customer.id", id),
	)
	defer func() { s.finish(ctx, run, err) }()

	if strings.TrimSpace(id) == "" {
		run.fail("ID_REQUIRED")
		return nil, newValidation(domain.ErrInvalidID)
	}
	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		run.fail("REPO_LOOKUP_FAILED")
		return nil, wrapRepositoryError(err)
	}
	run.customerID = entity.ID
	return entity, nil
}

// useCaseRun carries the bookkeeping shared by every use case execution.
type useCaseRun struct {
	useCase    string
	span       trace.Span
	logger     observability.Logger
	start      time.Time
	outcome    string
	status     string
	customerID string
}

func (r *useCaseRun) fail(status string) {
	r.outcome, r.status = "error", status
}

func (s *Service) begin(ctx context.Context, useCase, spanName string, attrs ...attribute.KeyValue) (context.Context, *useCaseRun) {
	attrs = append([]attribute.KeyValue{attribute.String("use_case", useCase)}, attrs...)
	ctx, span := s.tracer.Start(ctx, spanPrefix+spanName, attrs...)

	return ctx, &useCaseRun{
		useCase: useCase,
		span:    span,
		logger:  logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCase)),
		start:   time.Now(),
		outcome: "success",
		status:  "OK",
	}
}

func (s *Service) finish(ctx context.Context, run *useCaseRun, err error) {
	lat := time.Since(run.start).Seconds()

	if run.span != nil {
		if err != nil {
			run.span.RecordError(err)
			run.span.SetStatus(codes.Error, run.status)
		} else {
			run.span.SetStatus(codes.Ok, run.status)
		}
		run.span.End()
	}

	s.reqCounter.Add(1,
		observability.L("use_case", run.useCase),
		observability.L("outcome", run.outcome),
	)
	s.durHistogram.Observe(lat,
		observability.L("use_case", run.useCase),
	)

	fields := []observability.Field{
		observability.F("outcome", run.outcome),
		observability.F("status", run.status),
		observability.F("latency_seconds", lat),
	}
	if run.customerID != "" {
		fields = append(fields, observability.F("customer_id", run.customerID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	if err != nil {
		fields = append(fields, observability.F("error", err.Error()))
	}

	run.logger.Info("use_case_done", fields...)
}

func wrapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %w", ErrRepository, err)
	}
}

func newValidation(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
