package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Business metrics
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_registrations_total",
			Help: "Total number of registration attempts by result",
		},
		[]string{"result"},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	accountDeletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_deletions_total",
			Help: "Total number of users deleted with their dependent records",
		},
	)

	paymentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Total number of payments recorded",
		},
	)
)

// Result labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RecordRegistration counts a registration attempt
func RecordRegistration(result string) {
	registrationsTotal.WithLabelValues(result).Inc()
}

// RecordLogin counts a login attempt
func RecordLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// RecordAccountDeletion counts a completed cascading delete
func RecordAccountDeletion() {
	accountDeletionsTotal.Inc()
}

// RecordPayment counts a stored payment
func RecordPayment() {
	paymentsTotal.Inc()
}
