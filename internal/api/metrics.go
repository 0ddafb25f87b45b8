// Package api provides Prometheus metrics for backend calls.
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks backend requests by endpoint and outcome
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// RequestLatency tracks backend request latency
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_latency_seconds",
			Help:    "Backend API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// JobsSubmittedTotal tracks submitted backtest jobs
	JobsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backtest_jobs_submitted_total",
			Help: "Total number of backtest jobs submitted",
		},
	)

	// CacheHitRatio tracks the query cache hit ratio
	CacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "query_cache_hit_ratio",
			Help: "Backend query cache hit ratio",
		},
	)
)
