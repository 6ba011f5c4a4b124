package presets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var presetOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dating_filter_preset_operations_total",
		Help: "Filter preset store operations by outcome",
	},
	[]string{"operation", "outcome"},
)

func RecordOperation(operation, outcome string) {
	presetOperations.WithLabelValues(operation, outcome).Inc()
}
