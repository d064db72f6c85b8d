package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Rankings counts ranking runs by outcome (ok, config_error, bad_request)
	Rankings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "rankings_total", Help: "Ranking runs by outcome."},
		[]string{"outcome"},
	)
	// RankedRoutes observes how many candidate routes each run scored
	RankedRoutes = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "ranking_routes", Help: "Candidate routes per ranking run.", Buckets: []float64{1, 2, 4, 8, 16, 32}},
	)

	// ProviderRequests counts upstream waste-data calls by result (ok, error, cache_hit)
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "provider_requests_total", Help: "Upstream provider calls by result."},
		[]string{"result"},
	)
	// ProviderLatency tracks upstream call latencies in milliseconds
	ProviderLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "provider_latency_ms", Help: "Upstream provider latency in ms.", Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000}},
	)
)

// RegisterDefault registers collectors to the default registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Rankings)
		Registry.MustRegister(RankedRoutes)
		Registry.MustRegister(ProviderRequests)
		Registry.MustRegister(ProviderLatency)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
