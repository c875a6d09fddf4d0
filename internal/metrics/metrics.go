// Package metrics exposes Prometheus instrumentation for the sync layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RemoteOps counts remote store operations by operation and outcome.
// Outcome is "ok" or "error"; a rising error count means the app is
// running in local-only degraded mode.
var RemoteOps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "slate",
		Name:      "remote_ops_total",
		Help:      "Remote store operations by op and outcome.",
	},
	[]string{"op", "outcome"},
)

// FirstSyncPushes counts bills pushed to an empty remote store on first
// sign-in from a device with local data.
var FirstSyncPushes = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "slate",
		Name:      "first_sync_pushed_bills_total",
		Help:      "Local bills pushed to an empty remote store at first sync.",
	},
)

// ObserveRemoteOp records one remote operation result.
func ObserveRemoteOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RemoteOps.WithLabelValues(op, outcome).Inc()
}
