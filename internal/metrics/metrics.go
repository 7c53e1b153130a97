// Package metrics declares the Prometheus collectors exported at /metrics.
// Counters use promauto so registration happens at package init; handlers
// just increment.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LedgerTransitions counts admin status transitions, labeled by the
	// status the entry moved into.
	LedgerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loyalty_ledger_transitions_total",
		Help: "Points ledger status transitions processed, labeled by new status",
	}, []string{"status"})

	// Redemptions counts coupon redemption attempts by outcome
	// (success, insufficient_points, error).
	Redemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loyalty_redemptions_total",
		Help: "Coupon redemption attempts, labeled by outcome",
	}, []string{"outcome"})

	// CouponVerifications counts counter-side coupon consumption attempts
	// by result (consumed, already_used, expired, not_found, error).
	CouponVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loyalty_coupon_verifications_total",
		Help: "Coupon verification attempts, labeled by result",
	}, []string{"result"})

	// RedemptionDuration tracks latency of the redeem transaction, the
	// hottest contended path in the service.
	RedemptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loyalty_redemption_duration_seconds",
		Help:    "Latency distribution of coupon redemption requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})
)
