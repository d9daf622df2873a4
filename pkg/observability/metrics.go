package observability

import (
	"time"

	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of one provisioning process.
type Metrics struct {
	Registry *prometheus.Registry

	calls     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	resources *prometheus.CounterVec
	outcome   *prometheus.GaugeVec
	lastRun   prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundwork_api_calls_total",
				Help: "Remote API calls by service, operation and result.",
			},
			[]string{"service", "operation", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "groundwork_api_call_duration_seconds",
				Help:    "Duration of remote API calls.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "operation"},
		),
		resources: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundwork_resources_total",
				Help: "Resources handled by provisioning runs, by kind and status.",
			},
			[]string{"kind", "status"},
		),
		outcome: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "groundwork_provisioner_outcome",
				Help: "Outcome of the last run per provisioner (1 for the current outcome).",
			},
			[]string{"provisioner", "outcome"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "groundwork_last_run_timestamp_seconds",
			Help: "Unix time at which the last provisioning run finished.",
		}),
	}
	m.Registry.MustRegister(m.calls, m.duration, m.resources, m.outcome, m.lastRun)
	return m
}

// ObserveCall records one remote call.
func (m *Metrics) ObserveCall(service, operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(service, operation, resultLabel(err)).Inc()
	m.duration.WithLabelValues(service, operation).Observe(elapsed.Seconds())
}

// ObserveReport records the outcome of a finished run.
func (m *Metrics) ObserveReport(r *domain.Report) {
	if m == nil || r == nil {
		return
	}
	for _, step := range []domain.StepReport{r.Documents, r.Tasks} {
		m.outcome.DeletePartialMatch(prometheus.Labels{"provisioner": step.Provisioner})
		m.outcome.WithLabelValues(step.Provisioner, string(step.Outcome)).Set(1)
		for _, res := range step.Results {
			m.resources.WithLabelValues(string(res.Kind), string(res.Status)).Inc()
		}
	}
	m.lastRun.SetToCurrentTime()
}

// WriteTextfile writes every metric to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := domain.KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}
