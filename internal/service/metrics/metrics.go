package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insightsapi",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Quote provider requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insightsapi",
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Cache operations by namespace and result",
		},
		[]string{"namespace", "result"},
	)

	SignalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "insightsapi",
			Subsystem: "analysis",
			Name:      "latency_seconds",
			Help:      "Latency of signal computation operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	SignalsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insightsapi",
			Subsystem: "analysis",
			Name:      "signals_total",
			Help:      "Generated signals by decision",
		},
		[]string{"signal"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ProviderRequests, CacheOps, SignalLatency, SignalsGenerated)
	})
}
