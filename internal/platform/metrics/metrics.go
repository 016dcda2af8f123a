package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	ItinerariesCreated prometheus.Counter
	ActivityMutations  *prometheus.CounterVec
	RequestDuration    prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// New registers and returns the planner metrics. Call once per process; the
// collectors register against the default registry.
func New(namespace string) *Metrics {
	return &Metrics{
		ItinerariesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itineraries_created_total",
			Help:      "The total number of itineraries created",
		}),
		ActivityMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_mutations_total",
			Help:      "The total number of activity mutations by operation",
		}, []string{"operation"}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors by operation",
		}, []string{"operation"}),
	}
}
