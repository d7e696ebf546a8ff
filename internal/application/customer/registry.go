package customer

import (
	"context"
	"sync"

	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
)

// Registry keeps listeners in registration order and fans domain events out to them.
// Registering the same listener twice delivers every event to it twice.
type Registry struct {
	mu        sync.RWMutex
	listeners []domain.Listener
}

func NewRegistry() *Registry {
	return &Registry{}
}

// AddListener appends l. Nil listeners are ignored.
func (r *Registry) AddListener(l domain.Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Len reports the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// NotifySaved calls CustomerSaved on every listener, in registration order, on the
// caller's goroutine. A panicking listener is not recovered: the panic reaches the
// caller and the remaining listeners are skipped.
func (r *Registry) NotifySaved(ctx context.Context, c domain.Customer) {
	for _, l := range r.snapshot() {
		l.CustomerSaved(ctx, c)
	}
}

// NotifyDeleted is the CustomerDeleted counterpart of NotifySaved.
func (r *Registry) NotifyDeleted(ctx context.Context, c domain.Customer) {
	for _, l := range r.snapshot() {
		l.CustomerDeleted(ctx, c)
	}
}

// snapshot lets listeners register further listeners while being notified;
// those only see subsequent events.
func (r *Registry) snapshot() []domain.Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Listener(nil), r.listeners...)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// AddListener registers l on the process-wide registry.
func AddListener(l domain.Listener) { defaultRegistry.AddListener(l) }
