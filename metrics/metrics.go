package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricsOnce sync.Once

var metricsInstance *Metrics

// Metrics holds the Prometheus collectors for the upload server.
type Metrics struct {
	// HTTP
	RequestsTotal   *prometheus.CounterVec   // disaster_http_requests_total{route,status}
	RequestDuration *prometheus.HistogramVec // disaster_http_request_duration_seconds{route}

	// Upload pipeline
	StageFailures  *prometheus.CounterVec // disaster_upload_stage_failures_total{stage}
	UploadsTotal   prometheus.Counter     // disaster_uploads_total
	BytesUploaded  prometheus.Counter     // disaster_upload_bytes_total
	Compensations  *prometheus.CounterVec // disaster_upload_compensations_total{result}
	UploadDuration prometheus.Histogram   // disaster_upload_duration_seconds
}

// Init registers the collectors with registry, or with the default
// registerer if registry is nil. Collectors are registered only once;
// later calls return the same instance.
func Init(registry prometheus.Registerer) *Metrics {
	metricsOnce.Do(func() {
		if registry == nil {
			registry = prometheus.DefaultRegisterer
		}
		factory := promauto.With(registry)
		metricsInstance = &Metrics{
			RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "disaster_http_requests_total",
				Help: "HTTP requests by route and status code",
			}, []string{"route", "status"}),

			RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "disaster_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			}, []string{"route"}),

			StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "disaster_upload_stage_failures_total",
				Help: "Upload pipeline failures by stage",
			}, []string{"stage"}),

			UploadsTotal: factory.NewCounter(prometheus.CounterOpts{
				Name: "disaster_uploads_total",
				Help: "Uploads stored and recorded successfully",
			}),

			BytesUploaded: factory.NewCounter(prometheus.CounterOpts{
				Name: "disaster_upload_bytes_total",
				Help: "Bytes written to the object store",
			}),

			Compensations: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "disaster_upload_compensations_total",
				Help: "Rollbacks after a failed store write, by result",
			}, []string{"result"}),

			UploadDuration: factory.NewHistogram(prometheus.HistogramOpts{
				Name:    "disaster_upload_duration_seconds",
				Help:    "Time spent storing and recording one upload",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
			}),
		}
	})
	return metricsInstance
}

// Get returns the collectors, registering them with the default
// registerer if nobody has done so yet.
func Get() *Metrics {
	return Init(nil)
}
