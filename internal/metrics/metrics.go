// Package metrics provides Prometheus metrics for the card/wiki join
// service. Scrape these at /metrics for dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardwiki_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardwiki_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Join Pipeline Metrics
	JoinRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardwiki_join_runs_total",
			Help: "Total number of join runs executed",
		},
	)

	JoinRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cardwiki_join_run_duration_seconds",
			Help:    "Time taken to run one full join",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	EntitiesMatched = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardwiki_entities_matched",
			Help: "Entities with at least one wiki candidate after the last run",
		},
	)

	EntitiesUnmatched = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardwiki_entities_unmatched",
			Help: "Entities with no wiki candidate after the last run",
		},
	)

	MatchRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardwiki_match_rate_percent",
			Help: "Percentage of entities matched in the last run",
		},
	)

	// Corpus Metrics
	CardsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardwiki_cards_loaded",
			Help: "Card records loaded from the scrape directory",
		},
	)

	WikiTitlesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardwiki_wiki_titles_loaded",
			Help: "Wiki titles loaded into the match indexes",
		},
	)

	// Search Metrics
	SearchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardwiki_search_cache_hits_total",
			Help: "Entity searches served from the LRU cache",
		},
	)

	SearchCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardwiki_search_cache_misses_total",
			Help: "Entity searches that bypassed the LRU cache",
		},
	)
)

// RecordJoinStats publishes the gauges derived from one completed run.
func RecordJoinStats(matched, unmatched int, matchRate float64) {
	EntitiesMatched.Set(float64(matched))
	EntitiesUnmatched.Set(float64(unmatched))
	MatchRate.Set(matchRate)
}
