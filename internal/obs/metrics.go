// Package obs holds service-level observability helpers: Prometheus
// collectors and their HTTP exposition handler.
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardline_logins_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	lockoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "guardline_lockouts_total",
		Help: "Lockout windows entered after repeated failures.",
	})

	reportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardline_reports_total",
			Help: "Incident report submissions by outcome.",
		},
		[]string{"outcome"},
	)
)

// Init registers collectors in the default registry. Call once at bootstrap.
func Init() {
	prometheus.MustRegister(loginsTotal, lockoutsTotal, reportsTotal)
}

// Handler returns the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func CountLogin(outcome string)  { loginsTotal.WithLabelValues(outcome).Inc() }
func CountLockout()              { lockoutsTotal.Inc() }
func CountReport(outcome string) { reportsTotal.WithLabelValues(outcome).Inc() }
