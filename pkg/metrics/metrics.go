// Package metrics exposes the Prometheus instrumentation shared by the API
// and the workers.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SessionTransitions counts session status changes by target status.
	SessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_session_transitions_total",
		Help: "Number of session status transitions, labeled by target status.",
	}, []string{"to"})

	// EscrowMovements counts token movements through the escrow account.
	EscrowMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_escrow_movements_total",
		Help: "Number of escrow token movements, labeled by kind.",
	}, []string{"kind"})

	// NotificationFailures counts notification deliveries that failed.
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_notification_failures_total",
		Help: "Number of notification deliveries that failed.",
	})

	// CertificatesMinted counts certificate mint outcomes by result.
	CertificatesMinted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_certificates_minted_total",
		Help: "Number of certificate mint attempts, labeled by outcome.",
	}, []string{"outcome"})
)

// Escrow movement kinds.
const (
	EscrowReserve = "reserve"
	EscrowRelease = "release"
	EscrowRefund  = "refund"
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
