package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_portal_errors_total",
			Help: "Total number of logged errors.",
		},
		[]string{"type"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_portal_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	JobsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "job_portal_jobs_published_total",
			Help: "Total number of draft jobs flipped to active.",
		},
	)
	ApplicationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "job_portal_applications_created_total",
			Help: "Total number of submitted applications.",
		},
	)
	SearchCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_portal_search_cache_lookups_total",
			Help: "Job search cache lookups by result.",
		},
		[]string{"result"},
	)
	AlertNotifications = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "job_portal_alert_notifications_total",
			Help: "Total number of job alert notifications created.",
		},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ErrorsCounter,
			HTTPRequests,
			HTTPDuration,
			JobsPublished,
			ApplicationsCreated,
			SearchCacheLookups,
			AlertNotifications,
		)
	})
}
