package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoportal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geoportal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	documentsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoportal_documents_parsed_total",
			Help: "Uploaded documents by outcome",
		},
		[]string{"outcome"},
	)

	recordsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geoportal_records_parsed_total",
		Help: "Auction records produced from uploaded documents",
	})

	rowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geoportal_rows_skipped_total",
		Help: "Rows dropped as incomplete or orphaned",
	})
)

// metricsMiddleware records request counts and durations per route.
// Unmatched paths share one label to keep cardinality bounded.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
