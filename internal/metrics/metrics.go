// Package metrics provides Prometheus metrics for parqprof.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProfilesGenerated counts completed metadata generations.
	ProfilesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parqprof_profiles_generated_total",
		Help: "Total number of files profiled into metadata trees",
	})

	// ProfileDuration observes end-to-end metadata generation time.
	ProfileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "parqprof_profile_duration_seconds",
		Help:    "Duration of metadata generation per file in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// QueriesTotal counts executed metadata queries by outcome.
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parqprof_queries_total",
		Help: "Total number of metadata queries executed",
	}, []string{"status"})
)
