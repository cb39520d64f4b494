// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CapabilityInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capability_invocations_total",
			Help: "Total number of capability invocations",
		},
		[]string{"capability"},
	)

	CapabilityFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capability_failures_total",
			Help: "Total number of failed capability invocations",
		},
		[]string{"capability", "kind"},
	)

	CapabilityDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "capability_duration_seconds",
			Help: "Duration of capability execution in seconds",
		},
		[]string{"capability"},
	)

	CapabilityDegraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capability_degraded_total",
			Help: "Total number of invocations served with synthetic fallback data",
		},
		[]string{"capability"},
	)

	FusionCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fusion_cycles_total",
			Help: "Total number of completed decision fusion cycles",
		},
	)

	FusionConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fusion_conflicts_total",
			Help: "Total number of detected cross-domain conflicts",
		},
		[]string{"severity"},
	)

	BusQueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bus_queue_depth",
			Help: "Number of pending messages per recipient queue",
		},
		[]string{"recipient"},
	)
)
