package listener

import (
	"context"
	"time"

	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	domoutbox "github.com/Zhima-Mochi/customer-events/internal/domain/outbox"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
	"github.com/Zhima-Mochi/customer-events/internal/observability/logctx"
)

const defaultPublishTimeout = 300 * time.Millisecond

// Forwarder republishes listener callbacks as domain events so asynchronous
// subscribers (audit worker, redis relay) can consume them. Publishing is
// best-effort: failures are logged and never reach the notifying caller.
type Forwarder struct {
	publisher domoutbox.Publisher
	timeout   time.Duration
	log       observability.Logger
}

func NewForwarder(publisher domoutbox.Publisher, logger observability.Logger, timeout time.Duration) *Forwarder {
	if logger == nil {
		logger = observability.NopLogger()
	}
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Forwarder{
		publisher: publisher,
		timeout:   timeout,
		log:       logger.With(observability.F("component", componentListener)),
	}
}

func (f *Forwarder) CustomerSaved(ctx context.Context, c domain.Customer) {
	f.publish(ctx, domain.NewSavedEvent(c))
}

func (f *Forwarder) CustomerDeleted(ctx context.Context, c domain.Customer) {
	f.publish(ctx, domain.NewDeletedEvent(c))
}

func (f *Forwarder) publish(ctx context.Context, e domoutbox.Event) {
	if f.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if err := f.publisher.Publish(pubCtx, e); err != nil {
		logctx.FromOr(ctx, f.log).Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err.Error()),
		)
	}
}
