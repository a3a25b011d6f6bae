package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter serves metrics in Prometheus text exposition format at
// an HTTP endpoint, using the standard promhttp handler over a Registry's
// underlying prometheus.Registry.

// PrometheusConfig configures the Prometheus exporter.
type PrometheusConfig struct {
	// Namespace is an optional prefix that Qualify prepends to a metric
	// name (e.g. "satcity" produces "satcity_chain_height"). The Registry
	// registers names exactly as given and does not apply it.
	Namespace string
	// EnableRuntime controls whether Go runtime and process metrics
	// (goroutines, memory, GC, file descriptors) are included in the
	// output via the standard collectors package.
	EnableRuntime bool
	// Path is the HTTP path to serve metrics on (default "/metrics").
	Path string
}

// DefaultPrometheusConfig returns a config with sensible defaults.
func DefaultPrometheusConfig() PrometheusConfig {
	return PrometheusConfig{
		Namespace:     "satcity",
		EnableRuntime: true,
		Path:          "/metrics",
	}
}

// PrometheusExporter serves metrics from a Registry over HTTP.
type PrometheusExporter struct {
	config   PrometheusConfig
	registry *Registry
}

// NewPrometheusExporter creates an exporter reading from the given registry.
// When config.EnableRuntime is set, the standard Go and process collectors
// are registered so the scrape also reports goroutines, heap usage, GC
// pauses and open file descriptors.
func NewPrometheusExporter(registry *Registry, config PrometheusConfig) *PrometheusExporter {
	if config.Path == "" {
		config.Path = "/metrics"
	}
	if config.EnableRuntime {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return &PrometheusExporter{config: config, registry: registry}
}

// Handler returns an http.Handler that serves the configured metrics path
// using promhttp's exposition-format handler.
func (pe *PrometheusExporter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(pe.config.Path, promhttp.HandlerFor(pe.registry.Gatherer(), promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}))
	return mux
}

// Namespace returns the configured metric name prefix, or "" if none.
func (pe *PrometheusExporter) Namespace() string {
	return pe.config.Namespace
}

// Qualify prefixes name with the configured namespace and an underscore,
// or returns name unchanged when no namespace is configured.
func (pe *PrometheusExporter) Qualify(name string) string {
	if pe.config.Namespace == "" {
		return name
	}
	return pe.config.Namespace + "_" + name
}
