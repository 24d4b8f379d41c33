package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// GithubProxyRequests counts outbound GitHub API calls by result.
	GithubProxyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_github_proxy_requests_total",
		Help: "Total number of proxied GitHub API requests by result",
	}, []string{"result"})
)

// TrackQuery returns a function that records query latency when called
// (typically deferred at the top of a repository method).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
