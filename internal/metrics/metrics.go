package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"autosuggest/internal/models"
)

// topTermsExported caps label cardinality for the popularity gauge.
const topTermsExported = 50

var (
	termPopularityDesc = prometheus.NewDesc(
		"autosuggest_term_popularity",
		"Current popularity counter of the most popular terms",
		[]string{"term"},
		nil,
	)

	searchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "autosuggest_search_requests_total",
		Help: "Search requests by branch (random, match) and outcome (ok, error)",
	}, []string{"branch", "outcome"})

	searchResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "autosuggest_search_results",
		Help:    "Number of suggestions returned per search",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "autosuggest_search_duration_seconds",
		Help:    "Ranking query latency",
		Buckets: prometheus.DefBuckets,
	})

	selections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "autosuggest_selections_total",
		Help: "Recorded term selections by outcome",
	}, []string{"outcome"})
)

// TopTermSource lists the most popular terms.
type TopTermSource interface {
	TopTerms(ctx context.Context, n int) ([]models.Term, error)
}

// PopularityCollector is a custom Prometheus collector that reads term
// popularity from the store on each scrape.
type PopularityCollector struct {
	source TopTermSource
}

// Describe sends the metric descriptor to the channel.
func (c *PopularityCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- termPopularityDesc
}

// Collect queries the store for the top terms and emits them as gauges.
func (c *PopularityCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	terms, err := c.source.TopTerms(ctx, topTermsExported)
	if err != nil {
		slog.Error("failed to collect term popularity metrics", "error", err)
		return
	}
	for _, t := range terms {
		ch <- prometheus.MustNewConstMetric(
			termPopularityDesc,
			prometheus.GaugeValue,
			float64(t.Popularity),
			t.Term,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup; later calls are no-ops.
func Init(source TopTermSource) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			&PopularityCollector{source: source},
			searchRequests,
			searchResults,
			searchDuration,
			selections,
		)
	})
}

// ObserveSearch records one search request.
func ObserveSearch(query string, results int, elapsed time.Duration, err error) {
	branch := "match"
	if query == "" {
		branch = "random"
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	searchRequests.WithLabelValues(branch, outcome).Inc()
	searchDuration.Observe(elapsed.Seconds())
	if err == nil {
		searchResults.Observe(float64(results))
	}
}

// ObserveSelection records a selection outcome. Matches feedback.Service's observer signature.
func ObserveSelection(outcome string) {
	selections.WithLabelValues(outcome).Inc()
}
