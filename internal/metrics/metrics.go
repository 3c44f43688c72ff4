// Package metrics exposes AMP engine activity as Prometheus metrics, served
// over HTTP via promhttp the same way progressdb wires its /metrics
// endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry groups the counters and histograms a peer reports.
type Registry struct {
	reg *prometheus.Registry

	RequestsTotal  *prometheus.CounterVec
	ResponsesTotal *prometheus.CounterVec
	ErrorsTotal    *prometheus.CounterVec
	CallsInFlight  prometheus.Gauge
	CallLatency    *prometheus.HistogramVec
	BytesRead      prometheus.Counter
	BytesWritten   prometheus.Counter
	ParseFailures  prometheus.Counter
}

// New creates a Registry with all AMP peer metrics registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amp",
			Name:      "requests_total",
			Help:      "Total number of _command boxes dispatched, by command name.",
		}, []string{"command"}),
		ResponsesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amp",
			Name:      "responses_total",
			Help:      "Total number of _answer boxes received, by outcome.",
		}, []string{"outcome"}),
		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amp",
			Name:      "errors_total",
			Help:      "Total number of protocol errors observed, by kind.",
		}, []string{"kind"}),
		CallsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "amp",
			Name:      "calls_in_flight",
			Help:      "Number of outstanding calls awaiting an _answer or _error.",
		}),
		CallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "amp",
			Name:      "call_latency_seconds",
			Help:      "Time between Call and its matching _answer/_error, by command.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		BytesRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "amp",
			Name:      "bytes_read_total",
			Help:      "Total bytes consumed from the underlying stream.",
		}),
		BytesWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "amp",
			Name:      "bytes_written_total",
			Help:      "Total bytes written to the underlying stream.",
		}),
		ParseFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "amp",
			Name:      "parse_failures_total",
			Help:      "Total number of fatal wire-parse failures (BadKeySize).",
		}),
	}
}

// Handler returns the HTTP handler serving this registry's metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
