package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	BookingsCreated  prometheus.Counter
	BookingsRejected prometheus.Counter
	PaymentsRecorded prometheus.Counter
}

// New registers the collectors with the given registerer. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_api_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinic_api_request_duration_seconds",
			Help:    "Time spent handling HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_api_bookings_created_total",
			Help: "Total number of bookings created",
		}),

		BookingsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_api_bookings_rejected_total",
			Help: "Total number of bookings rejected as duplicates",
		}),

		PaymentsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinic_api_payments_recorded_total",
			Help: "Total number of payments recorded",
		}),
	}
}
