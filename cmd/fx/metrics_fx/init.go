package metrics_fx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"mindcare/pkg/metrics"
)

var Module = fx.Provide(
	provideRegistry,
	provideRecorder)

type registryOut struct {
	fx.Out

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

func provideRegistry() registryOut {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registryOut{Registerer: reg, Gatherer: reg}
}

func provideRecorder(reg prometheus.Registerer) metrics.Recorder {
	return metrics.NewCollector(reg)
}
