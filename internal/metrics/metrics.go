package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for action counters.
const (
	OutcomeOK             = "ok"
	OutcomeAPIError       = "api_error"
	OutcomeShapeError     = "shape_error"
	OutcomeTransportError = "transport_error"
	OutcomeNoCredential   = "no_credential"
	OutcomeOpenError      = "open_error"
	OutcomeEmpty          = "empty"
)

type Metrics struct {
	registry    *prometheus.Registry
	actions     *prometheus.CounterVec
	llmDuration prometheus.Histogram
	uploads     *prometheus.CounterVec
}

// New builds collectors on a private registry so tests can create many.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "analyst",
			Name:      "actions_total",
			Help:      "Document actions by type and outcome.",
		}, []string{"action", "outcome"}),
		llmDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "analyst",
			Name:      "llm_request_duration_seconds",
			Help:      "Latency of chat completion calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "analyst",
			Name:      "uploads_total",
			Help:      "Uploaded documents by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.actions,
		m.llmDuration,
		m.uploads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveAction(action, outcome string) {
	m.actions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) ObserveUpload(outcome string) {
	m.uploads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLLM(d time.Duration) {
	m.llmDuration.Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
