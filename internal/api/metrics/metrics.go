// Package metrics defines all custom Prometheus metrics for the booking API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics register themselves with the default registry via promauto; the
// /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Availability metrics ──────────────────────────────────────────────────────

// SlotsReplacedTotal counts proposed slots written by slot replacement.
var SlotsReplacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_replaced_total",
		Help:      "Total number of availability slots written by slot replacement.",
	},
)

// SlotDaysRebuiltTotal counts day buckets rewritten by slot replacement.
var SlotDaysRebuiltTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_days_rebuilt_total",
		Help:      "Total number of calendar-day buckets whose slots were rewritten.",
	},
)

// ── Settlement metrics ────────────────────────────────────────────────────────

// AppointmentsSettledTotal counts successful appointment state changes.
// Label:
//   - action: "book", "cancel" or "complete"
var AppointmentsSettledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_settled_total",
		Help:      "Total number of successful appointment settlements, by action.",
	},
	[]string{"action"},
)

// SettlementErrorsTotal counts settlements that failed at the store.
// Label:
//   - reason: short failure description (e.g. "book_failed", "cancel_failed")
var SettlementErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlement_errors_total",
		Help:      "Total number of appointment settlements that failed.",
	},
	[]string{"reason"},
)

// CreditsTransferredTotal accumulates the absolute credit volume moved
// between parties, by ledger transaction type.
var CreditsTransferredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credits_transferred_total",
		Help:      "Total credits moved between patients and doctors, by ledger type.",
	},
	[]string{"type"},
)

// ── View invalidation metrics ─────────────────────────────────────────────────

// ViewInvalidationQueueDepth tracks pending invalidations per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewInvalidationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_invalidation_queue_depth",
		Help:      "Current number of view invalidations pending in each worker channel.",
	},
	[]string{"worker_id"},
)
