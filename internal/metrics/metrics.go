package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Standard Prometheus collectors for the resonance service
var (
	// resonance_requests_total (counter): analyze requests received
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resonance_requests_total",
		Help: "Total number of analyze requests received",
	})

	// resonance_latency_seconds (histogram): analyze duration
	LatencyHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resonance_latency_seconds",
		Help:    "Analyze request processing latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// resonance_dimension_score{dimension=iai|cai|pas|sas|cps|css|am}
	DimensionScore = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resonance_dimension_score",
		Help:    "Distribution of per-dimension scores",
		Buckets: prometheus.LinearBuckets(0, 0.1, 13),
	}, []string{"dimension"})

	// resonance_index (histogram): final composite score
	IndexScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resonance_index",
		Help:    "Distribution of the composite Resonance Index",
		Buckets: prometheus.LinearBuckets(0, 0.1, 13),
	})

	// resonance_intent_pattern{intent=precision_seeker|strategic_explorer|co_creation_partner}
	IntentPattern = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonance_intent_pattern",
		Help: "Detected user intent patterns",
	}, []string{"intent"})

	// resonance_feedback_total{rating}
	FeedbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonance_feedback_total",
		Help: "Feedback submissions by rating",
	}, []string{"rating"})
)

// RecordDimensionScore observes one dimension score
func RecordDimensionScore(dimension string, score float64) {
	DimensionScore.WithLabelValues(dimension).Observe(score)
}

// RecordIntent increments the detected-intent counter
func RecordIntent(intent string) {
	IntentPattern.WithLabelValues(intent).Inc()
}

// RecordFeedback increments the feedback counter for a rating
func RecordFeedback(rating string) {
	FeedbackTotal.WithLabelValues(rating).Inc()
}

// Safe initialization check (though promauto handles registration automatically)
func Init() {
	log.Println("[metrics] Prometheus collectors initialized")
}
