package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all collectors registered for a running contract host,
// keyed by name. Collectors are created on first access (get-or-create
// semantics) so callers never need to check for nil, and each is backed by
// a real prometheus.Collector rather than a hand-rolled counter type.
type Registry struct {
	mu         sync.RWMutex
	prom       *prometheus.Registry
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// DefaultRegistry is a process-wide Registry for callers that do not
// supply their own. No package in this module registers metrics into it.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry backed by a fresh
// prometheus.Registry.
func NewRegistry() *Registry {
	return &Registry{
		prom:       prometheus.NewRegistry(),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// Counter returns the CounterVec registered under name, creating it (with
// the given help text and label names) if it does not already exist. The
// help and labels arguments are only consulted the first time name is seen.
func (r *Registry) Counter(name, help string, labels ...string) *prometheus.CounterVec {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counters[name]; ok {
		return c
	}
	c = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	r.prom.MustRegister(c)
	r.counters[name] = c
	return c
}

// Gauge returns the GaugeVec registered under name, creating it if it does
// not already exist.
func (r *Registry) Gauge(name, help string, labels ...string) *prometheus.GaugeVec {
	r.mu.RLock()
	g, ok := r.gauges[name]
	r.mu.RUnlock()
	if ok {
		return g
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok = r.gauges[name]; ok {
		return g
	}
	g = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	r.prom.MustRegister(g)
	r.gauges[name] = g
	return g
}

// Histogram returns the HistogramVec registered under name, creating it
// with the given bucket boundaries if it does not already exist.
func (r *Registry) Histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	r.mu.RLock()
	h, ok := r.histograms[name]
	r.mu.RUnlock()
	if ok {
		return h
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok = r.histograms[name]; ok {
		return h
	}
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	h = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	r.prom.MustRegister(h)
	r.histograms[name] = h
	return h
}

// Gatherer exposes the underlying prometheus.Registry for use by an
// exporter, or for direct registration of additional collectors such as
// the standard Go runtime collector.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.prom
}

// MustRegister registers one or more additional prometheus.Collector
// instances directly against the underlying registry. Panics if a
// collector with a colliding descriptor is already registered.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.prom.MustRegister(cs...)
}
