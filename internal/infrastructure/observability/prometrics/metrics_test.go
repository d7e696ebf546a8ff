package prometrics_test

import (
	"strings"
	"testing"

	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CounterIsRegisteredOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := prometrics.New(reg, "", "")

	a := r.Counter("jobs_total", "Jobs.", "kind")
	b := r.Counter("jobs_total", "Jobs.", "kind")
	a.Add(1, observability.L("kind", "x"))
	b.Bind(observability.L("kind", "x")).Add(2)

	expected := `
# HELP jobs_total Jobs.
# TYPE jobs_total counter
jobs_total{kind="x"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "jobs_total"))
}

func TestRegistry_HistogramNamespaced(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := prometrics.New(reg, "customers", "api")

	h := r.Histogram("latency_seconds", "Latency.", []float64{0.1, 1}, "route")
	h.Observe(0.05, observability.L("route", "/customers"))
	h.Bind(observability.L("route", "/customers")).Observe(0.5)

	count, err := testutil.GatherAndCount(reg, "customers_api_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegisterDefaults(t *testing.T) {
	reg := prometheus.NewRegistry()
	counters, histograms := prometrics.RegisterDefaults(prometrics.New(reg, "", ""))

	assert.Len(t, counters, 4)
	assert.Len(t, histograms, 3)
	assert.Contains(t, counters, observability.MCustomerEvents)
	assert.Contains(t, histograms, observability.MHTTPRequestDuration)

	// vectors only show up once a series exists
	counters[observability.MCustomerEvents].Add(1, observability.L("event", "customer.saved"))
	count, err := testutil.GatherAndCount(reg, "customer_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
