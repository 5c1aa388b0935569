package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewRegistry returns a registry with build info, go runtime and process metrics,
// plus the given collectors (e.g. the db pool collector).
func NewRegistry(extraCollectors ...prometheus.Collector) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	standard := []prometheus.Collector{
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsGC, collectors.MetricsScheduler),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range append(standard, extraCollectors...) {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return registry, nil
}
