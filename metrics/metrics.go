package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bus-route-server/routing"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busroute_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "busroute_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// RouteQueriesTotal counts route queries by outcome, see
	// services.Outcome; cache hits count as "cached".
	RouteQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busroute_route_queries_total",
			Help: "Total number of route queries by outcome",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "busroute_search_duration_seconds",
			Help:    "Time spent inside the path search",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
	)

	SearchExplored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "busroute_search_explored_states",
			Help:    "Number of search states popped per query",
			Buckets: prometheus.ExponentialBuckets(16, 4, 9),
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busroute_route_cache_lookups_total",
			Help: "Route cache lookups by result",
		},
		[]string{"result"},
	)

	GraphSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "busroute_graph_size",
			Help: "Size of the loaded bus network",
		},
		[]string{"kind"},
	)
)

// ObserveNetwork publishes the size of a freshly built network.
func ObserveNetwork(s routing.NetworkStats) {
	GraphSize.WithLabelValues("nodes").Set(float64(s.Nodes))
	GraphSize.WithLabelValues("edges").Set(float64(s.Edges))
	GraphSize.WithLabelValues("lines").Set(float64(s.Lines))
	GraphSize.WithLabelValues("inert_lines").Set(float64(s.InertLines))
	GraphSize.WithLabelValues("components").Set(float64(s.Components))
}
