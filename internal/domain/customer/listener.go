package customer

import "context"

// Listener is notified synchronously whenever a customer is saved or deleted.
// Callbacks have no return value; a listener handles its own failures.
type Listener interface {
	CustomerSaved(ctx context.Context, c Customer)
	CustomerDeleted(ctx context.Context, c Customer)
}

// ListenerFuncs builds a Listener from closures. A nil func ignores that event.
type ListenerFuncs struct {
	Saved   func(ctx context.Context, c Customer)
	Deleted func(ctx context.Context, c Customer)
}

func (f ListenerFuncs) CustomerSaved(ctx context.Context, c Customer) {
	if f.Saved != nil {
		f.Saved(ctx, c)
	}
}

func (f ListenerFuncs) CustomerDeleted(ctx context.Context, c Customer) {
	if f.Deleted != nil {
		f.Deleted(ctx, c)
	}
}
