// Package metrics exposes Prometheus instruments for the upstream proxy.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scouting"

// Cache lookup outcomes.
const (
	CacheHit         = "hit"
	CacheMiss        = "miss"
	CacheCoalesced   = "coalesced"
	CacheRevalidated = "revalidated"
	CacheStored      = "stored"
	CacheEvicted     = "evicted"
)

// Recorder owns a private registry. All methods are safe on a nil *Recorder.
type Recorder struct {
	registry *prometheus.Registry

	cacheEvents      *prometheus.CounterVec
	cacheEntries     prometheus.Gauge
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	circuitState     *prometheus.GaugeVec
	lookupFailures   prometheus.Counter
	prefetchRuns     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		cacheEvents: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Response cache events by outcome.",
		}, []string{"outcome"}),
		cacheEntries: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Entries currently held by the response cache.",
		}),
		upstreamRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests sent to the upstream API by status code (0 = transport failure).",
		}, []string{"status"}),
		upstreamLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		circuitState: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "circuit_state",
			Help:      "1 for the breaker's current state, 0 otherwise.",
		}, []string{"state"}),
		lookupFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pit",
			Name:      "lookup_failures_total",
			Help:      "Local pit scouting lookups that degraded to an empty set.",
		}),
		prefetchRuns: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prefetch",
			Name:      "tasks_total",
			Help:      "Prefetch tasks by result.",
		}, []string{"result"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Inbound requests by status code.",
		}, []string{"status"}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) CacheEvent(outcome string) {
	if r == nil {
		return
	}
	r.cacheEvents.WithLabelValues(outcome).Inc()
}

func (r *Recorder) CacheSize(n int) {
	if r == nil {
		return
	}
	r.cacheEntries.Set(float64(n))
}

func (r *Recorder) UpstreamRequest(status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	label := strconv.Itoa(status)
	r.upstreamRequests.WithLabelValues(label).Inc()
	r.upstreamLatency.WithLabelValues(label).Observe(elapsed.Seconds())
}

func (r *Recorder) CircuitState(current string, all ...string) {
	if r == nil {
		return
	}
	for _, state := range all {
		v := 0.0
		if state == current {
			v = 1
		}
		r.circuitState.WithLabelValues(state).Set(v)
	}
}

func (r *Recorder) LookupFailure() {
	if r == nil {
		return
	}
	r.lookupFailures.Inc()
}

func (r *Recorder) PrefetchTask(result string) {
	if r == nil {
		return
	}
	r.prefetchRuns.WithLabelValues(result).Inc()
}

func (r *Recorder) HTTPRequest(status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}
