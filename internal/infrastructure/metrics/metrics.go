package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "support",
			Subsystem: "chat_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "support",
			Subsystem: "chat_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "support",
			Subsystem: "chat_api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	// Messages appended to transcripts
	MessagesRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "support",
			Subsystem: "chat_api",
			Name:      "messages_recorded_total",
			Help:      "Total transcript messages recorded",
		},
		[]string{"sender"},
	)

	// Model provider errors
	ModelErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "support",
			Subsystem: "chat_api",
			Name:      "model_errors_total",
			Help:      "Total model collaborator call failures",
		},
		[]string{"error_type"},
	)
)

// RecordRequest records metrics for a completed HTTP request
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}
