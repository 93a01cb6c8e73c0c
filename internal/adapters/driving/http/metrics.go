package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

// Report run outcomes used as the "outcome" label.
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Metrics holds the pipeline collectors on a private registry, so several
// servers in one process (and tests) never collide.
type Metrics struct {
	registry   *prometheus.Registry
	reportRuns *prometheus.CounterVec
	ingestRows prometheus.Counter
	duration   prometheus.Histogram
}

// NewMetrics creates and registers the pipeline collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoreport_report_runs_total",
			Help: "Reports generated, by report and outcome.",
		}, []string{"report", "outcome"}),
		ingestRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoreport_ingest_rows_total",
			Help: "Records ingested from input files.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecoreport_pipeline_duration_seconds",
			Help:    "Wall time of a full pipeline run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.reportRuns, m.ingestRows, m.duration)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying collector registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun records one pipeline run. summary may be nil when the run failed
// before any report executed.
func (m *Metrics) ObserveRun(summary *driving.RunSummary, elapsed time.Duration) {
	m.duration.Observe(elapsed.Seconds())
	if summary == nil {
		return
	}
	m.ingestRows.Add(float64(summary.Records))
	for _, res := range summary.Results {
		outcome := OutcomeOK
		switch {
		case res.Failed():
			outcome = OutcomeFailed
		case res.IsEmpty():
			outcome = OutcomeEmpty
		}
		m.reportRuns.WithLabelValues(res.Name, outcome).Inc()
	}
}
