package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the decode
// pipeline.
type Metrics struct {
	FilesProcessed      prometheus.Counter
	ReportsDecoded      prometheus.Counter
	DecodeFailures      prometheus.Counter
	ReportsDeduplicated prometheus.Counter
	BatchDuration       prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_decoder",
			Name:      "files_processed_total",
			Help:      "Total input files read.",
		}),
		ReportsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_decoder",
			Name:      "reports_decoded_total",
			Help:      "Total reports decoded successfully.",
		}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_decoder",
			Name:      "decode_failures_total",
			Help:      "Total reports skipped because no station id was found.",
		}),
		ReportsDeduplicated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_decoder",
			Name:      "reports_deduplicated_total",
			Help:      "Total duplicate raw reports dropped.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metar_decoder",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete batch decode run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	prometheus.MustRegister(
		m.FilesProcessed,
		m.ReportsDecoded,
		m.DecodeFailures,
		m.ReportsDeduplicated,
		m.BatchDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can construct pipelines repeatedly without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesProcessed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_decoder", Name: "files_processed_total"}),
		ReportsDecoded:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_decoder", Name: "reports_decoded_total"}),
		DecodeFailures:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_decoder", Name: "decode_failures_total"}),
		ReportsDeduplicated: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_decoder", Name: "reports_deduplicated_total"}),
		BatchDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "metar_decoder", Name: "batch_duration_seconds"}),
	}
}
