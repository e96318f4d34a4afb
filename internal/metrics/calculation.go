package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fibwhole"

// Calculation holds the Prometheus instruments for Fibonacci runs. Each
// instance owns its registry, so tests and embedded uses do not collide on
// the global default registerer.
type Calculation struct {
	registry      *prometheus.Registry
	additions     prometheus.Counter
	carryPrepends prometheus.Counter
	terms         *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	resultGroups  prometheus.Gauge
	active        prometheus.Gauge
}

// NewCalculation creates the instruments and registers them together with
// the Go runtime and process collectors.
func NewCalculation() *Calculation {
	m := &Calculation{
		registry: prometheus.NewRegistry(),
		additions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "additions_total",
			Help:      "WholeNumber additions performed by the linked-list calculator.",
		}),
		carryPrepends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carry_prepends_total",
			Help:      "Digit groups prepended to accumulators by a final carry.",
		}),
		terms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terms_total",
			Help:      "Fibonacci terms computed, by algorithm and status.",
		}, []string{"algorithm", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_seconds",
			Help:      "Wall time of a single calculation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"algorithm"}),
		resultGroups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "result_groups",
			Help:      "Digit groups in the most recent result.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_calculations",
			Help:      "Calculations currently running.",
		}),
	}
	m.registry.MustRegister(
		m.additions, m.carryPrepends, m.terms, m.duration, m.resultGroups, m.active,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordAddition counts one accumulator addition. Growth of the group count
// is attributed to carry prepends.
func (m *Calculation) RecordAddition(groupsBefore, groupsAfter int) {
	m.additions.Inc()
	if groupsAfter > groupsBefore {
		m.carryPrepends.Add(float64(groupsAfter - groupsBefore))
	}
}

// Start marks a calculation as running and returns a function that records
// its outcome. groups is the size of the result, ignored on failure.
func (m *Calculation) Start(algorithm string) func(groups int, err error) {
	m.active.Inc()
	start := time.Now()
	return func(groups int, err error) {
		m.active.Dec()
		m.duration.WithLabelValues(algorithm).Observe(time.Since(start).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
		} else {
			m.resultGroups.Set(float64(groups))
		}
		m.terms.WithLabelValues(algorithm, status).Inc()
	}
}

// Registry exposes the underlying registry.
func (m *Calculation) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Calculation) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
