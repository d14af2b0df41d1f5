// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "github.com/prometheus/client_golang/prometheus"

var (
	recordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_actions_recorded_total",
			Help: "Total number of daily actions recorded",
		},
		[]string{"action"},
	)
	rejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_actions_rejected_total",
			Help: "Total number of record attempts rejected before storage",
		},
		[]string{"reason"},
	)
)

// Collectors returns the ledger metrics for registration
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{recordedTotal, rejectedTotal}
}
