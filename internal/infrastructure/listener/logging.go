package listener

import (
	"context"

	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
	"github.com/Zhima-Mochi/customer-events/internal/observability/logctx"
)

const componentListener = "customer_listener"

// Logging records every event as a structured log entry. The request-scoped
// logger from ctx wins over the base logger so request ids carry through.
type Logging struct {
	log observability.Logger
}

func NewLogging(logger observability.Logger) *Logging {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Logging{log: logger.With(observability.F("component", componentListener))}
}

func (l *Logging) CustomerSaved(ctx context.Context, c domain.Customer) {
	_, logger := logctx.WithFields(ctx, l.log, observability.F("event", domain.EventSaved))
	logger.Info("customer_saved",
		observability.F("customer_id", c.ID),
		observability.F("customer_name", c.Name),
	)
}

func (l *Logging) CustomerDeleted(ctx context.Context, c domain.Customer) {
	_, logger := logctx.WithFields(ctx, l.log, observability.F("event", domain.EventDeleted))
	logger.Info("customer_deleted",
		observability.F("customer_id", c.ID),
		observability.F("customer_name", c.Name),
	)
}
