package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmind_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketmind_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Generation Metrics
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmind_generations_total",
			Help: "Total number of AI generation requests",
		},
		[]string{"kind", "plan", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketmind_generation_duration_seconds",
			Help:    "AI generation call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s to ~1 minute
		},
		[]string{"kind"},
	)

	// Account Metrics
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketmind_registrations_total",
			Help: "Total number of account registrations",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmind_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	PlanChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmind_plan_changes_total",
			Help: "Total number of plan selections",
		},
		[]string{"plan"},
	)

	// Store Metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmind_store_operations_total",
			Help: "Total number of record store operations",
		},
		[]string{"operation", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketmind_store_operation_duration_seconds",
			Help:    "Record store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Storage Metrics
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmind_image_uploads_total",
			Help: "Total number of generated image uploads",
		},
		[]string{"status"},
	)

	ImageUploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marketmind_image_upload_size_bytes",
			Help:    "Size of uploaded images in bytes",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10), // 16KB to 16MB
		},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmind_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordGeneration records an AI generation request
func RecordGeneration(kind, plan, status string, duration float64) {
	GenerationsTotal.WithLabelValues(kind, plan, status).Inc()
	GenerationDuration.WithLabelValues(kind).Observe(duration)
}

// RecordLogin records a login attempt
func RecordLogin(status string) {
	LoginsTotal.WithLabelValues(status).Inc()
}

// RecordPlanChange records a plan selection
func RecordPlanChange(plan string) {
	PlanChangesTotal.WithLabelValues(plan).Inc()
}

// RecordStoreOperation records a record store operation
func RecordStoreOperation(operation, status string, duration float64) {
	StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	StoreOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordImageUpload records a generated image upload
func RecordImageUpload(status string, sizeBytes int) {
	ImageUploadsTotal.WithLabelValues(status).Inc()
	if sizeBytes > 0 {
		ImageUploadSizeBytes.Observe(float64(sizeBytes))
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
