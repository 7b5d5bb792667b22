// Package metrics provides Prometheus metrics for discogswatch. Scrape
// these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Collection gauges, refreshed once per poll cycle.
	CollectionRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discogswatch_collection_records",
			Help: "Number of records in the collection",
		},
	)

	WantlistRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discogswatch_wantlist_records",
			Help: "Number of records on the wantlist",
		},
	)

	VinylRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discogswatch_collection_vinyl_records",
			Help: "Number of collection items whose first format is Vinyl",
		},
	)

	CDRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discogswatch_collection_cd_records",
			Help: "Number of collection items whose first format is CD",
		},
	)

	CollectionValue = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "discogswatch_collection_value",
			Help: "Estimated collection value as reported by Discogs",
		},
		[]string{"stat", "currency"}, // stat: "minimum", "median", "maximum"
	)

	// Poller metrics
	PollCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discogswatch_poll_cycles_total",
			Help: "Total number of completed poll cycles",
		},
	)

	PollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discogswatch_poll_duration_seconds",
			Help:    "Time taken to complete one poll cycle",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discogswatch_fetch_errors_total",
			Help: "Discogs fetch failures by stage",
		},
		[]string{"stage"}, // "identity", "folders", "collection_value", "classification", "random_record"
	)
)
