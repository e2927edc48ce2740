package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batepapo_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batepapo_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	ParticipantsJoined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batepapo_participants_joined_total",
			Help: "Total participants joined",
		},
	)

	MessagesPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batepapo_messages_posted_total",
			Help: "Total messages posted",
		},
		[]string{"type"}, // "message" or "private_message"
	)

	HeartbeatsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batepapo_heartbeats_total",
			Help: "Total heartbeats received",
		},
	)

	// Sweep metrics
	SweepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batepapo_sweeps_total",
			Help: "Total expiry sweep runs",
		},
	)

	ParticipantsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batepapo_participants_expired_total",
			Help: "Total participants evicted by the sweeper",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batepapo_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)
)
