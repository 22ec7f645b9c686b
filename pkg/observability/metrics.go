// Package observability provides Prometheus metrics for a config
// generation run. The process is one-shot, so metrics are not served over
// HTTP; they can be dumped in text exposition format for a node-exporter
// textfile collector instead.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// RouteEntriesBuilt counts route entries written to model_list.
	RouteEntriesBuilt = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "langop_configgen_route_entries_total",
			Help: "Route entries emitted into model_list",
		},
	)

	// DegradedConditions counts recoverable anomalies by condition:
	// missing_api_key, unknown_provider, unknown_strategy,
	// malformed_duration.
	DegradedConditions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langop_configgen_degraded_total",
			Help: "Recoverable anomalies during config generation",
		},
		[]string{"condition"},
	)

	// LastRunTimestamp records when the config was last generated.
	LastRunTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "langop_configgen_last_run_timestamp_seconds",
			Help: "Unix time of the last config generation",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RouteEntriesBuilt,
		DegradedConditions,
		LastRunTimestamp,
	)
}
