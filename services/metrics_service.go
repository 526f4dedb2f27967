package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ovnup_request_total",
			Help: "Total HTTP requests served by the status API",
		},
		[]string{"handler"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ovnup_request_duration_seconds",
			Help:    "Duration of status API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)

	requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ovnup_request_errors_total",
			Help: "Status API requests answered with a 4xx/5xx code",
		},
		[]string{"handler"},
	)

	launchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ovnup_service_launch_total",
			Help: "Successful daemon launches",
		},
		[]string{"service"},
	)

	launchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ovnup_service_launch_failures_total",
			Help: "Fatal daemon launch failures",
		},
		[]string{"service"},
	)

	serviceUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ovnup_service_up",
			Help: "Whether the service was launched and not yet stopped",
		},
		[]string{"service"},
	)

	readinessWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ovnup_readiness_wait_seconds",
			Help:    "Time spent waiting on readiness gates",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(requestErrors)
	prometheus.MustRegister(launchTotal)
	prometheus.MustRegister(launchFailures)
	prometheus.MustRegister(serviceUp)
	prometheus.MustRegister(readinessWait)
}

func recordLaunch(service string) {
	launchTotal.WithLabelValues(service).Inc()
	serviceUp.WithLabelValues(service).Set(1)
}

func recordLaunchFailure(service string) {
	launchFailures.WithLabelValues(service).Inc()
	serviceUp.WithLabelValues(service).Set(0)
}

func recordServiceDown(service string) {
	serviceUp.WithLabelValues(service).Set(0)
}

func observeReadinessWait(d time.Duration) {
	readinessWait.Observe(d.Seconds())
}

// IncrementRequestCount counts one status API request
func IncrementRequestCount(handler string) {
	requestCount.WithLabelValues(handler).Inc()
}

// RecordRequestDuration records the handling time of one request
func RecordRequestDuration(handler string, seconds float64) {
	requestDuration.WithLabelValues(handler).Observe(seconds)
}

// IncrementErrorCount counts one failed (4xx/5xx) request
func IncrementErrorCount(handler string) {
	requestErrors.WithLabelValues(handler).Inc()
}
