package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 30},
		},
		[]string{"method", "endpoint"},
	)

	SchemaSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobform_schema_saves_total",
			Help: "Form schema replace attempts by result",
		},
		[]string{"result"},
	)

	Suggestions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobform_suggestions_total",
			Help: "AI field suggestion requests by outcome",
		},
		[]string{"outcome"},
	)

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobform_submissions_total",
			Help: "Application form submissions by outcome",
		},
		[]string{"outcome"},
	)
)

// Outcome labels.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultError    = "error"
	ResultEmpty    = "empty"
	ResultRejected = "rejected"
)

var once sync.Once

// Init registers the collectors with the default registry. It is safe to call
// more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, SchemaSaves, Suggestions, Submissions)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
