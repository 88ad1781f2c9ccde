// Package metrics provides Prometheus metric collection for the auth
// and ownership decision points.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is the interface middleware and handlers record through.
type Collector interface {
	RecordAuthOutcome(outcome string)
	RecordOwnershipDecision(resourceType, decision string)
	RecordLogin(kind, outcome string)
	RecordHTTPRequest(method, route, status string, seconds float64)
}

// PrometheusCollector implements Collector backed by a prometheus
// registry.
type PrometheusCollector struct {
	authOutcomes       *prometheus.CounterVec
	ownershipDecisions *prometheus.CounterVec
	logins             *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewCollector creates a collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_auth_outcomes_total",
			Help: "Token verification outcomes at the request gate",
		}, []string{"outcome"}),
		ownershipDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_ownership_decisions_total",
			Help: "Ownership authorization decisions per resource type",
		}, []string{"resource_type", "decision"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_logins_total",
			Help: "Login attempts by principal kind and outcome",
		}, []string{"kind", "outcome"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(c.authOutcomes, c.ownershipDecisions, c.logins, c.httpDuration)
	return c
}

// RecordAuthOutcome counts a token verification outcome
// (ok, missing, expired, malformed, bad_signature).
func (c *PrometheusCollector) RecordAuthOutcome(outcome string) {
	c.authOutcomes.WithLabelValues(outcome).Inc()
}

// RecordOwnershipDecision counts an authorization decision
// (allow, deny, error).
func (c *PrometheusCollector) RecordOwnershipDecision(resourceType, decision string) {
	c.ownershipDecisions.WithLabelValues(resourceType, decision).Inc()
}

// RecordLogin counts a login attempt.
func (c *PrometheusCollector) RecordLogin(kind, outcome string) {
	c.logins.WithLabelValues(kind, outcome).Inc()
}

// RecordHTTPRequest observes one request. route is the registered route
// pattern, not the raw path, to keep cardinality bounded.
func (c *PrometheusCollector) RecordHTTPRequest(method, route, status string, seconds float64) {
	c.httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler returns the HTTP handler exposing the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Nop is a no-op collector for tests.
type Nop struct{}

func (Nop) RecordAuthOutcome(string)                          {}
func (Nop) RecordOwnershipDecision(string, string)            {}
func (Nop) RecordLogin(string, string)                        {}
func (Nop) RecordHTTPRequest(string, string, string, float64) {}
