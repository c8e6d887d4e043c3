package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	recommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_recommendations_total",
		Help: "Recommendation requests by outcome",
	}, []string{"outcome"})

	pitchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_generated_total",
		Help: "Pitch generation requests by outcome",
	}, []string{"outcome"})

	decksSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_decks_skipped_total",
		Help: "Decks left out of an assembled pitch because they could not be resolved",
	}, []string{"kind"})

	rateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_http_rate_limited_total",
		Help: "Requests rejected by the rate limiter by route group",
	}, []string{"group"})

	assemblySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pitch_assembly_duration_seconds",
		Help:    "Time spent merging a pitch document",
		Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
	})

	assemblyPages = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pitch_assembly_pages",
		Help:    "Page count of assembled pitch documents",
		Buckets: []float64{4, 8, 12, 16, 24, 32, 48, 64},
	})
)

func init() {
	registry.MustRegister(
		recommendationsTotal,
		pitchesTotal,
		decksSkippedTotal,
		rateLimitedTotal,
		assemblySeconds,
		assemblyPages,
	)
}

// IncRecommendation counts a recommendation outcome (ok, empty, no_segment, invalid).
func IncRecommendation(outcome string) {
	recommendationsTotal.WithLabelValues(outcome).Inc()
}

// IncPitch counts a generate outcome.
func IncPitch(outcome string) {
	pitchesTotal.WithLabelValues(outcome).Inc()
}

// IncDeckSkipped counts an unresolvable deck of the given kind (industry, product).
func IncDeckSkipped(kind string) {
	decksSkippedTotal.WithLabelValues(kind).Inc()
}

// IncRateLimited counts a request rejected with 429.
func IncRateLimited(group string) {
	rateLimitedTotal.WithLabelValues(group).Inc()
}

// ObserveAssembly records a completed assembly.
func ObserveAssembly(seconds float64, pages int) {
	if seconds < 0 {
		seconds = 0
	}
	assemblySeconds.Observe(seconds)
	assemblyPages.Observe(float64(pages))
}

// Registry exposes the private registry for tests and custom exporters.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
