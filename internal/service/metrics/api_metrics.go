package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finscore",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of scoring endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finscore",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by scoring endpoint",
		},
		[]string{"endpoint"},
	)

	APICacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finscore",
			Subsystem: "api",
			Name:      "cache_hits_total",
			Help:      "Report cache hits by endpoint",
		},
		[]string{"endpoint"},
	)
)

// Register adds the endpoint collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, APICacheHits)
	})
}
