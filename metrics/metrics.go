// Package metrics exposes Prometheus instruments for searches, edits and
// sessions. Instruments register with the default registry on import and are
// served by promhttp.Handler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchTotal counts completed searches by outcome
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_search_total",
		Help: "Total searches by outcome",
	}, []string{"status"})

	// searchDuration tracks search latency, cached results included
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_search_duration_seconds",
		Help:    "Search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	})

	// searchExplored tracks how many cells a search discovered
	searchExplored = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_search_explored_cells",
		Help:    "Number of cells discovered per search",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 2500, 5000, 10000},
	})

	// editTotal counts board commands by action and outcome
	editTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_edit_total",
		Help: "Total board commands by action and outcome",
	}, []string{"action", "outcome"}) // outcome is "ok" or "rejected"

	// activeSessions is the number of sessions held in memory
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridpath_active_sessions",
		Help: "Number of active sessions",
	})
)

// ObserveSearch records one search outcome
func ObserveSearch(status string, d time.Duration, explored int) {
	searchTotal.WithLabelValues(status).Inc()
	searchDuration.Observe(d.Seconds())
	searchExplored.Observe(float64(explored))
}

// RecordEdit records one board command
func RecordEdit(action string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "rejected"
	}
	editTotal.WithLabelValues(action, outcome).Inc()
}

// SetActiveSessions sets the session gauge
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
