package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"inventory-service/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Stock movement metrics
	StockOperationsCounter prometheus.CounterVec

	// Alert lifecycle metrics
	AlertsCreatedCounter  prometheus.CounterVec
	AlertsResolvedCounter prometheus.Counter

	// Password reset metrics
	OtpIssuedCounter prometheus.Counter
	OtpFailedCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Inventory metrics
	ProductInventoryGauge prometheus.GaugeVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	StockOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stock_operations_total",
			Help: "Total number of stock movements",
		},
		[]string{"type", "entity_type"},
	)

	AlertsCreatedCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_alerts_created_total",
			Help: "Total number of alerts created",
		},
		[]string{"type"},
	)

	AlertsResolvedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_alerts_resolved_total",
			Help: "Total number of alerts resolved",
		},
	)

	OtpIssuedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_otp_issued_total",
			Help: "Total number of password reset codes issued",
		},
	)

	OtpFailedCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_otp_failed_total",
			Help: "Total number of failed password reset attempts",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ProductInventoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_product_inventory",
			Help: "Current inventory level for products",
		},
		[]string{"product_id", "product_name", "category"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordStockOperation increments the counter for stock movements
func RecordStockOperation(txType, entityType string) {
	StockOperationsCounter.WithLabelValues(txType, entityType).Inc()
}

// RecordAlertCreated increments the counter for created alerts
func RecordAlertCreated(alertType string) {
	AlertsCreatedCounter.WithLabelValues(alertType).Inc()
}

// UpdateProductInventory updates the gauge for product inventory
func UpdateProductInventory(productID string, productName string, category string, count float64) {
	ProductInventoryGauge.WithLabelValues(productID, productName, category).Set(count)
}
