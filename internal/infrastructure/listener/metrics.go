package listener

import (
	"context"

	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
)

// Metrics counts events in customer_events_total{event}.
type Metrics struct {
	saved   observability.BoundCounter
	deleted observability.BoundCounter
}

func NewMetrics(metrics observability.Metrics) *Metrics {
	if metrics == nil {
		metrics = observability.NopMetrics()
	}
	c := metrics.Counter(observability.MCustomerEvents)
	return &Metrics{
		saved:   c.Bind(observability.L("event", domain.EventSaved)),
		deleted: c.Bind(observability.L("event", domain.EventDeleted)),
	}
}

func (m *Metrics) CustomerSaved(context.Context, domain.Customer)   { m.saved.Add(1) }
func (m *Metrics) CustomerDeleted(context.Context, domain.Customer) { m.deleted.Add(1) }
