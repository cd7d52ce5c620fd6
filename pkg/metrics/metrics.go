package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	ContentOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site", Name: "content_operations_total", Help: "Content operations by type, operation and outcome."},
		[]string{"type", "op", "outcome"},
	)
	ContentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "site", Name: "content_operation_duration_seconds", Help: "Content operation latency.", Buckets: prometheus.DefBuckets},
		[]string{"type", "op"},
	)
	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site", Name: "admin_login_attempts_total", Help: "Admin login attempts by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ContentOperations)
	reg.MustRegister(ContentDuration)
	reg.MustRegister(AdminLogins)
}
