package customer_test

import (
	"context"
	"testing"

	appcustomer "github.com/Zhima-Mochi/customer-events/internal/application/customer"
	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder appends "<name>.<callback>(<customer id>)" to a shared call log.
type recorder struct {
	name  string
	calls *[]string
}

func (r recorder) CustomerSaved(_ context.Context, c domain.Customer) {
	*r.calls = append(*r.calls, r.name+".saved("+c.ID+")")
}

func (r recorder) CustomerDeleted(_ context.Context, c domain.Customer) {
	*r.calls = append(*r.calls, r.name+".deleted("+c.ID+")")
}

func TestRegistry_NotifiesInRegistrationOrder(t *testing.T) {
	var calls []string
	reg := appcustomer.NewRegistry()
	reg.AddListener(recorder{name: "A", calls: &calls})
	reg.AddListener(recorder{name: "B", calls: &calls})

	reg.NotifySaved(context.Background(), domain.Customer{ID: "C"})

	assert.Equal(t, []string{"A.saved(C)", "B.saved(C)"}, calls)
}

func TestRegistry_EachListenerOncePerEvent(t *testing.T) {
	var calls []string
	reg := appcustomer.NewRegistry()
	reg.AddListener(recorder{name: "A", calls: &calls})
	reg.AddListener(recorder{name: "B", calls: &calls})
	reg.AddListener(recorder{name: "C", calls: &calls})

	ctx := context.Background()
	reg.NotifySaved(ctx, domain.Customer{ID: "1"})
	reg.NotifyDeleted(ctx, domain.Customer{ID: "1"})

	assert.Equal(t, []string{
		"A.saved(1)", "B.saved(1)", "C.saved(1)",
		"A.deleted(1)", "B.deleted(1)", "C.deleted(1)",
	}, calls)
}

func TestRegistry_DuplicateRegistrationIsNotDeduplicated(t *testing.T) {
	var calls []string
	a := &recorder{name: "A", calls: &calls}
	reg := appcustomer.NewRegistry()
	reg.AddListener(a)
	reg.AddListener(a)

	reg.NotifyDeleted(context.Background(), domain.Customer{ID: "x"})

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"A.deleted(x)", "A.deleted(x)"}, calls)
}

func TestRegistry_NoListeners(t *testing.T) {
	reg := appcustomer.NewRegistry()

	assert.NotPanics(t, func() {
		reg.NotifySaved(context.Background(), domain.Customer{ID: "1"})
		reg.NotifyDeleted(context.Background(), domain.Customer{ID: "1"})
	})
	assert.Zero(t, reg.Len())
}

func TestRegistry_IgnoresNilListener(t *testing.T) {
	reg := appcustomer.NewRegistry()
	reg.AddListener(nil)

	assert.Zero(t, reg.Len())
}

func TestRegistry_ListenerFuncs(t *testing.T) {
	var saved, deleted []string
	reg := appcustomer.NewRegistry()
	reg.AddListener(domain.ListenerFuncs{
		Saved: func(_ context.Context, c domain.Customer) { saved = append(saved, c.Name) },
	})
	reg.AddListener(domain.ListenerFuncs{
		Deleted: func(_ context.Context, c domain.Customer) { deleted = append(deleted, c.Name) },
	})

	reg.NotifySaved(context.Background(), domain.Customer{ID: "1", Name: "John"})
	reg.NotifyDeleted(context.Background(), domain.Customer{ID: "1", Name: "John"})

	assert.Equal(t, []string{"John"}, saved)
	assert.Equal(t, []string{"John"}, deleted)
}

func TestRegistry_PanicPropagatesAndStopsLaterListeners(t *testing.T) {
	var calls []string
	reg := appcustomer.NewRegistry()
	reg.AddListener(recorder{name: "A", calls: &calls})
	reg.AddListener(domain.ListenerFuncs{
		Saved: func(context.Context, domain.Customer) { panic("boom") },
	})
	reg.AddListener(recorder{name: "C", calls: &calls})

	assert.PanicsWithValue(t, "boom", func() {
		reg.NotifySaved(context.Background(), domain.Customer{ID: "1"})
	})
	assert.Equal(t, []string{"A.saved(1)"}, calls)
}

func TestRegistry_ListenerAddedDuringNotificationSeesNextEventOnly(t *testing.T) {
	var calls []string
	reg := appcustomer.NewRegistry()
	late := recorder{name: "late", calls: &calls}
	added := false
	reg.AddListener(domain.ListenerFuncs{
		Saved: func(context.Context, domain.Customer) {
			if !added {
				added = true
				reg.AddListener(late)
			}
		},
	})

	reg.NotifySaved(context.Background(), domain.Customer{ID: "1"})
	require.Empty(t, calls)

	reg.NotifySaved(context.Background(), domain.Customer{ID: "2"})
	assert.Equal(t, []string{"late.saved(2)"}, calls)
}

func TestDefaultRegistry_PackageAndServicePathsShareOneList(t *testing.T) {
	reg := appcustomer.DefaultRegistry()
	before := reg.Len()

	var calls []string
	svc := appcustomer.NewService(nil, reg, nil, nil)
	appcustomer.AddListener(recorder{name: "package", calls: &calls})
	svc.AddListener(recorder{name: "service", calls: &calls})

	require.Equal(t, before+2, reg.Len())
	require.Same(t, reg, svc.Listeners())

	reg.NotifySaved(context.Background(), domain.Customer{ID: "1"})
	assert.Equal(t, []string{"package.saved(1)", "service.saved(1)"}, calls)
}
