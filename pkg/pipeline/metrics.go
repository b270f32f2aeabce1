package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of pipeline runs
type Metrics struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	stageDuration *prometheus.GaugeVec
	records       prometheus.Gauge
	textBytes     prometheus.Gauge
	outputBytes   *prometheus.CounterVec
}

// NewMetrics creates pipeline metrics on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sus_runs_total",
				Help: "Total number of pipeline runs",
			},
			[]string{"status"},
		),

		stageDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sus_stage_duration_seconds",
				Help: "Wall time of the last run of each pipeline stage",
			},
			[]string{"stage"},
		),

		records: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sus_records",
				Help: "Number of records read by the last run",
			},
		),

		textBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sus_text_bytes",
				Help: "Encoded text length of the last run",
			},
		),

		outputBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sus_output_bytes_total",
				Help: "Bytes written to array files",
			},
			[]string{"ext"},
		),
	}
}

// Registry returns the registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes the metrics to path in the text exposition format
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observeStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

func (m *Metrics) observeInput(records, length int) {
	if m == nil {
		return
	}
	m.records.Set(float64(records))
	m.textBytes.Set(float64(length))
}

func (m *Metrics) observeOutput(ext string, bytes int) {
	if m == nil {
		return
	}
	m.outputBytes.WithLabelValues(ext).Add(float64(bytes))
}

func (m *Metrics) observeRun(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.runsTotal.WithLabelValues(status).Inc()
}
