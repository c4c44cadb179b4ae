// Package metrics exposes the terminal's Prometheus metrics, served at
// /metrics in the text exposition format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terminal_orders_placed_total",
			Help: "Orders transmitted to the gateway",
		},
		[]string{"type", "side"},
	)

	entriesBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terminal_entries_blocked_total",
			Help: "Entry and add requests denied before any order was placed",
		},
		[]string{"reason"},
	)

	exitsReconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terminal_exits_total",
			Help: "Exit signal outcomes",
		},
		[]string{"outcome"},
	)

	openRisk = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "terminal_open_risk_usd",
			Help: "Total finite open risk across positions, from the last risk table build",
		},
	)
)

func init() {
	prometheus.MustRegister(ordersPlaced, entriesBlocked, exitsReconciled, openRisk)
}

func OrderPlaced(orderType, side string) {
	ordersPlaced.WithLabelValues(orderType, side).Inc()
}

func EntryBlocked(reason string) {
	entriesBlocked.WithLabelValues(reason).Inc()
}

func ExitOutcome(outcome string) {
	exitsReconciled.WithLabelValues(outcome).Inc()
}

func SetOpenRisk(total float64) {
	openRisk.Set(total)
}
