package customer_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	appcustomer "github.com/Zhima-Mochi/customer-events/internal/application/customer"
	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/customer-events/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/observability/prometrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("cust-%d", s.n)
}

type captured struct {
	saved   []domain.Customer
	deleted []domain.Customer
}

func (c *captured) CustomerSaved(_ context.Context, cust domain.Customer) {
	c.saved = append(c.saved, cust)
}

func (c *captured) CustomerDeleted(_ context.Context, cust domain.Customer) {
	c.deleted = append(c.deleted, cust)
}

type failingRepo struct{ err error }

func (f failingRepo) Save(context.Context, *domain.Customer) error { return f.err }
func (f failingRepo) Get(context.Context, string) (*domain.Customer, error) {
	return nil, f.err
}
func (f failingRepo) Delete(context.Context, string) error { return f.err }

type fixture struct {
	svc      *appcustomer.Service
	repo     *memory.CustomerRepository
	listener *captured
	metrics  *prometheus.Registry
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	promReg := prometheus.NewRegistry()
	counters, histograms := prometrics.RegisterDefaults(prometrics.New(promReg, "", ""))
	tel := infraobs.New(infraobs.WithCounters(counters), infraobs.WithHistograms(histograms))

	repo := memory.NewCustomerRepository()
	svc := appcustomer.NewService(repo, appcustomer.NewRegistry(), &seqIDs{}, tel)
	l := &captured{}
	svc.AddListener(l)

	return fixture{svc: svc, repo: repo, listener: l, metrics: promReg}
}

func TestService_SaveCreatesAndNotifies(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.Save(context.Background(), appcustomer.SaveInput{Name: "  John "})
	require.NoError(t, err)
	assert.Equal(t, "cust-1", got.ID)
	assert.Equal(t, "John", got.Name)

	stored, err := f.repo.Get(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, got.Name, stored.Name)

	require.Len(t, f.listener.saved, 1)
	assert.Equal(t, *got, f.listener.saved[0])
	assert.Empty(t, f.listener.deleted)
}

func TestService_SaveExistingRenames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Save(ctx, appcustomer.SaveInput{Name: "John"})
	require.NoError(t, err)

	second, err := f.svc.Save(ctx, appcustomer.SaveInput{ID: first.ID, Name: "Johnny"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Johnny", second.Name)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, 1, f.repo.Len())
	require.Len(t, f.listener.saved, 2)
	assert.Equal(t, "Johnny", f.listener.saved[1].Name)
}

func TestService_SaveWithUnknownIDCreatesIt(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.Save(context.Background(), appcustomer.SaveInput{ID: "john", Name: "John"})
	require.NoError(t, err)

	assert.Equal(t, "john", got.ID)
	require.Len(t, f.listener.saved, 1)
}

func TestService_SaveRejectsBlankName(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Save(context.Background(), appcustomer.SaveInput{Name: "   "})

	require.Error(t, err)
	assert.ErrorIs(t, err, appcustomer.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	assert.Empty(t, f.listener.saved)
	assert.Zero(t, f.repo.Len())
}

func TestService_SaveHonoursCanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Save(ctx, appcustomer.SaveInput{Name: "John"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.listener.saved)
}

func TestService_DeleteNotifiesWithRemovedCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	john, err := f.svc.Save(ctx, appcustomer.SaveInput{Name: "John"})
	require.NoError(t, err)

	removed, err := f.svc.Delete(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, john.ID, removed.ID)

	require.Len(t, f.listener.deleted, 1)
	assert.Equal(t, "John", f.listener.deleted[0].Name)

	_, err = f.svc.Get(ctx, john.ID)
	assert.ErrorIs(t, err, appcustomer.ErrNotFound)
}

func TestService_DeleteMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Delete(context.Background(), "nobody")

	assert.ErrorIs(t, err, appcustomer.ErrNotFound)
	assert.Empty(t, f.listener.deleted)
}

func TestService_DeleteRequiresID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Delete(context.Background(), "")

	assert.ErrorIs(t, err, appcustomer.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestService_RepositoryFailureIsWrapped(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := appcustomer.NewService(failingRepo{err: boom}, nil, &seqIDs{}, nil)

	_, err := svc.Save(context.Background(), appcustomer.SaveInput{ID: "x", Name: "John"})

	assert.ErrorIs(t, err, appcustomer.ErrRepository)
	assert.ErrorIs(t, err, boom)
}

func TestService_ListenerPanicReachesCaller(t *testing.T) {
	f := newFixture(t)
	f.svc.AddListener(domain.ListenerFuncs{
		Saved: func(context.Context, domain.Customer) { panic("listener exploded") },
	})

	assert.PanicsWithValue(t, "listener exploded", func() {
		_, _ = f.svc.Save(context.Background(), appcustomer.SaveInput{Name: "John"})
	})

	// stored before listeners ran, and the earlier listener was notified
	assert.Equal(t, 1, f.repo.Len())
	assert.Len(t, f.listener.saved, 1)
}

func TestService_RecordsUseCaseMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Save(ctx, appcustomer.SaveInput{Name: "John"})
	require.NoError(t, err)
	_, err = f.svc.Save(ctx, appcustomer.SaveInput{Name: ""})
	require.Error(t, err)

	expected := `
# HELP usecase_requests_total Total number of use case invocations.
# TYPE usecase_requests_total counter
usecase_requests_total{outcome="error",use_case="customer.save"} 1
usecase_requests_total{outcome="success",use_case="customer.save"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(f.metrics, strings.NewReader(expected), "usecase_requests_total"))
	count, err := testutil.GatherAndCount(f.metrics, "usecase_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
