package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "record_store_load_latency_seconds",
			Help:    "Latency of loading the price record table in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		},
		[]string{"source"},
	)

	loadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_store_load_errors_total",
			Help: "Total number of failed record loads",
		},
		[]string{"source"},
	)

	recordsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "record_store_records",
			Help: "Number of price records returned by the last load",
		},
		[]string{"source"},
	)

	cacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_store_cache_requests_total",
			Help: "Record snapshot cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss" or "error"
	)
)
