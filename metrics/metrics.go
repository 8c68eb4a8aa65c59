// Package metrics records export run metrics in a Prometheus registry.
//
// A batch exporter has no scrape endpoint, so metrics are written in the
// node_exporter textfile collector format at the end of a run. All methods
// are no-ops on a nil *Metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sckan"

// Metrics holds the run metrics.
type Metrics struct {
	registry *prometheus.Registry

	queryDuration *prometheus.HistogramVec
	queryRows     *prometheus.CounterVec
	rowsRejected  *prometheus.CounterVec
	entities      *prometheus.GaugeVec
	lastSuccess   prometheus.Gauge
}

// New creates and registers the run metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time taken to execute each source query.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"query"}),
		queryRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_rows_total",
			Help:      "Rows returned by each source query.",
		}, []string{"query"}),
		rowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Rows skipped because a required binding was missing.",
		}, []string{"query"}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "export_entities",
			Help:      "Entries in each section of the last export.",
		}, []string{"section"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "export_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful export.",
		}),
	}
	m.registry.MustRegister(m.queryDuration, m.queryRows, m.rowsRejected, m.entities, m.lastSuccess)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveQuery records one query execution.
func (m *Metrics) ObserveQuery(query string, d time.Duration, rows int) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(query).Observe(d.Seconds())
	m.queryRows.WithLabelValues(query).Add(float64(rows))
}

// RowsRejected records rows skipped while shaping a query's results.
func (m *Metrics) RowsRejected(query string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.rowsRejected.WithLabelValues(query).Add(float64(n))
}

// SetEntities records the size of a document section.
func (m *Metrics) SetEntities(section string, n int) {
	if m == nil {
		return
	}
	m.entities.WithLabelValues(section).Set(float64(n))
}

// MarkSuccess records the time of a successful export.
func (m *Metrics) MarkSuccess(t time.Time) {
	if m == nil {
		return
	}
	m.lastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
