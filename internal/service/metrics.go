package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// classificationsTotal counts classified entries by stage and category
	classificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillindex_classifications_total",
		Help: "Total classified entries by outcome and primary category",
	}, []string{"outcome", "category"})

	// entriesSkipped counts input entries dropped for lacking an ID
	entriesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillindex_entries_skipped_total",
		Help: "Total input entries skipped because their ID was empty",
	})

	// buildDuration tracks how long classifying a whole index takes
	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skillindex_build_duration_seconds",
		Help:    "Category index build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})

	// syncTotal counts sync attempts by result (built, unchanged, failed)
	syncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillindex_sync_total",
		Help: "Total index syncs by result",
	}, []string{"result"})
)
