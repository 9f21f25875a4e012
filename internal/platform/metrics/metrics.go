package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the connector.
type Metrics struct {
	AuthorisationsStarted   prometheus.Counter
	AuthorisationsFinalised prometheus.Counter
	AuthorisationsFailed    prometheus.Counter
	AttemptFailures         prometheus.Counter
	BackendErrors           prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AuthorisationsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scaflow_authorisations_started_total",
			Help: "Total number of SCA authorisations bootstrapped",
		}),
		AuthorisationsFinalised: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scaflow_authorisations_finalised_total",
			Help: "Total number of SCA authorisations reaching FINALISED or EXEMPTED",
		}),
		AuthorisationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scaflow_authorisations_failed_total",
			Help: "Total number of SCA authorisations terminating in FAILED",
		}),
		AttemptFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scaflow_attempt_failures_total",
			Help: "Total number of retry-eligible TAN attempt failures",
		}),
		BackendErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scaflow_backend_errors_total",
			Help: "Total number of core-banking backend call failures",
		}),
	}
}

// nil-safe increment helpers so wiring metrics stays optional in tests

func (m *Metrics) IncStarted() {
	if m != nil {
		m.AuthorisationsStarted.Inc()
	}
}

func (m *Metrics) IncFinalised() {
	if m != nil {
		m.AuthorisationsFinalised.Inc()
	}
}

func (m *Metrics) IncFailed() {
	if m != nil {
		m.AuthorisationsFailed.Inc()
	}
}

func (m *Metrics) IncAttemptFailure() {
	if m != nil {
		m.AttemptFailures.Inc()
	}
}

func (m *Metrics) IncBackendError() {
	if m != nil {
		m.BackendErrors.Inc()
	}
}
