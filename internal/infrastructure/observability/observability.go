package observability

import (
	"github.com/Zhima-Mochi/customer-events/internal/observability"
)

type provider struct {
	tracer  observability.Tracer
	logger  observability.Logger
	metrics *registeredMetrics
}

type registeredMetrics struct {
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

// Counter falls back to a no-op instrument for keys nobody registered.
func (m *registeredMetrics) Counter(name observability.MetricKey) observability.Counter {
	if c, ok := m.counters[name]; ok && c != nil {
		return c
	}
	return observability.NopCounter()
}

func (m *registeredMetrics) Histogram(name observability.MetricKey) observability.Histogram {
	if h, ok := m.histograms[name]; ok && h != nil {
		return h
	}
	return observability.NopHistogram()
}

type Option func(*provider)

func WithTracer(t observability.Tracer) Option {
	return func(p *provider) {
		if t != nil {
			p.tracer = t
		}
	}
}

func WithLogger(l observability.Logger) Option {
	return func(p *provider) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithCounters(counters map[observability.MetricKey]observability.Counter) Option {
	return func(p *provider) {
		for k, v := range counters {
			if v != nil {
				p.metrics.counters[k] = v
			}
		}
	}
}

func WithHistograms(histograms map[observability.MetricKey]observability.Histogram) Option {
	return func(p *provider) {
		for k, v := range histograms {
			if v != nil {
				p.metrics.histograms[k] = v
			}
		}
	}
}

// New assembles an Observability provider. Anything not supplied is a no-op.
func New(opts ...Option) observability.Observability {
	p := &provider{
		tracer: observability.NopTracer(),
		logger: observability.NopLogger(),
		metrics: &registeredMetrics{
			counters:   make(map[observability.MetricKey]observability.Counter),
			histograms: make(map[observability.MetricKey]observability.Histogram),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *provider) Tracer() observability.Tracer {
	return p.tracer
}

func (p *provider) Logger() observability.Logger {
	return p.logger
}

func (p *provider) Metrics() observability.Metrics {
	return p.metrics
}
