package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics shared across the screener

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scan_run_duration_seconds",
			Help:    "Duration of full scoring runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	AssetsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assets_scored_total",
			Help: "Total number of assets scored successfully",
		},
	)

	AssetFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_failures_total",
			Help: "Total number of per-asset scoring failures",
		},
		[]string{"reason"},
	)
)
