package metrics

import "github.com/prometheus/client_golang/prometheus"

// RPC Prometheus metrics.
var (
	RPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "memvid",
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	RPCTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memvid",
			Name:      "rpc_requests_total",
			Help:      "Total number of RPCs handled",
		},
		[]string{"method", "code"},
	)

	SearchHitsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "memvid",
			Name:      "search_hits_returned",
			Help:      "Number of hits returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memvid",
			Name:      "search_cache_total",
			Help:      "Search cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registered bool

// Register registers all Prometheus metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(RPCDuration)
	prometheus.MustRegister(RPCTotal)
	prometheus.MustRegister(SearchHitsReturned)
	prometheus.MustRegister(SearchCacheTotal)
	registered = true
}
