package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream API metrics.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lolstats_upstream_requests_total",
			Help: "Requests sent to the Riot API by endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lolstats_upstream_request_duration_seconds",
			Help:    "Duration of Riot API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// HTTP API metrics.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lolstats_http_requests_total",
			Help: "HTTP requests served by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lolstats_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Cache metrics.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lolstats_cache_lookups_total",
			Help: "Read-through cache lookups by kind and result (hit, miss, error)",
		},
		[]string{"kind", "result"},
	)

	// Sync metrics.
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lolstats_sync_runs_total",
			Help: "Sync cycles by outcome",
		},
		[]string{"outcome"},
	)

	SyncMatchesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lolstats_sync_matches_fetched_total",
			Help: "Match details fetched and stored by sync cycles",
		},
	)

	SyncMatchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lolstats_sync_match_failures_total",
			Help: "Match detail fetches dropped during sync cycles",
		},
	)
)
