// Package metrics holds the prometheus collectors of the API. Everything is
// registered on the default registry and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration is labelled by the chi route pattern, not the raw path,
	// so usernames and post ids do not explode the series count.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedgate_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// LoginTotal labels: scope ("user", "moderator"), outcome ("success", "failure").
	LoginTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgate_login_total",
			Help: "Login attempts by scope and outcome.",
		},
		[]string{"scope", "outcome"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgate_registrations_total",
			Help: "Successful account registrations.",
		},
		[]string{"scope"},
	)

	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedgate_posts_created_total",
		Help: "Posts successfully created.",
	})

	// PaymentsTotal labels: outcome ("success", "declined", "unavailable", "conflict").
	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedgate_payments_total",
			Help: "Subscription payments by outcome.",
		},
		[]string{"outcome"},
	)

	// BreakerState mirrors the payment circuit breaker: 0 closed, 1 half-open, 2 open.
	BreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "feedgate_payment_breaker_state",
		Help: "State of the payment processor circuit breaker.",
	})
)

const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeDeclined    = "declined"
	OutcomeUnavailable = "unavailable"
	OutcomeConflict    = "conflict"
)

func RecordLogin(scope string, ok bool) {
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	LoginTotal.WithLabelValues(scope, outcome).Inc()
}

func RecordPayment(outcome string) { PaymentsTotal.WithLabelValues(outcome).Inc() }
