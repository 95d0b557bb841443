// Package observability wires metrics providers for the application.
package observability

import (
	"github.com/aquametric/aquatrack/internal/config"
	"github.com/aquametric/aquatrack/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideRegistry,
		provideMetrics,
	),
)

func provideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func provideMetrics(cfg config.Config, registry *prometheus.Registry) *metrics.Metrics {
	return metrics.New(cfg, registry)
}
