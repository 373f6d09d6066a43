package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "neo_etl"

// Metrics holds the Prometheus counters and histograms for one ETL run.
type Metrics struct {
	RecordsExtracted *prometheus.CounterVec   // labels: dataset={neos,approaches}
	ConstructErrors  *prometheus.CounterVec   // labels: dataset={neos,approaches}
	RowsWritten      *prometheus.CounterVec   // labels: format={csv,json}
	StageDuration    *prometheus.HistogramVec // labels: stage={extract,construct,link,export}

	registry *prometheus.Registry
}

// NewMetrics creates the run metrics on a private registry. A batch run has
// no scrape endpoint, so the registry is flushed with WriteTextfile instead.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_extracted_total",
			Help:      "Raw records read from the input files.",
		}, []string{"dataset"}),
		ConstructErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "construct_errors_total",
			Help:      "Raw records that failed entity construction.",
		}, []string{"dataset"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Close-approach rows written to the output file.",
		}, []string{"format"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RecordsExtracted,
		m.ConstructErrors,
		m.RowsWritten,
		m.StageDuration,
	)

	return m
}

// Gatherer exposes the private registry, e.g. for testutil assertions.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile dumps the registry in the text exposition format for the
// node_exporter textfile collector. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
