package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigup_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gigup_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigup_recommendations_total",
			Help: "Total number of recommendation requests.",
		},
		[]string{"result"},
	)

	RecommendedGigs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gigup_recommended_gigs",
			Help:    "Number of gigs returned per recommendation request.",
			Buckets: []float64{0, 1, 5, 10, 15, 20},
		},
	)

	VerificationCodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigup_verification_codes_total",
			Help: "Verification codes by type and outcome (issued, consumed, rejected).",
		},
		[]string{"type", "result"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigup_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigup_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		},
		[]string{"path"},
	)

	CleanupPurgedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gigup_cleanup_purged_codes_total",
			Help: "Verification codes removed by the cleanup worker.",
		},
	)
)

var registerOnce sync.Once

// MustRegister регистрирует коллекторы в глобальном реестре один раз за процесс
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			RecommendationsTotal,
			RecommendedGigs,
			VerificationCodesTotal,
			LoginsTotal,
			RateLimitedTotal,
			CleanupPurgedTotal,
		)
	})
}
