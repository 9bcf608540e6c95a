// Package metrics defines and registers all custom Prometheus metrics for
// the store API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time via promauto; the /metrics endpoint is served by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store"

// ── Purchase metrics ──────────────────────────────────────────────────────────

// PurchasesTotal counts purchases that committed successfully.
var PurchasesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase transactions committed.",
	},
)

// PurchaseFailuresTotal counts purchases that aborted and were compensated.
// Label:
//   - reason: "insufficient_stock", "buyer_not_found", "product_not_found",
//     "duplicate", or "internal"
var PurchaseFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchase_failures_total",
		Help:      "Total number of purchase submissions that failed, by reason.",
	},
	[]string{"reason"},
)

// StockRejectionsTotal counts insufficient-stock rejections.
// Label:
//   - path: "checkout" (pre-check during pricing) or "purchase" (conditional
//     decrement miss)
var StockRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_rejections_total",
		Help:      "Total number of insufficient-stock rejections, by code path.",
	},
	[]string{"path"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutSessionsTotal counts payment session creations.
// Label:
//   - result: "created" or "failed"
var CheckoutSessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_total",
		Help:      "Total number of payment checkout sessions requested, by result.",
	},
	[]string{"result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// EmailsTotal counts confirmation mail deliveries.
// Label:
//   - result: "sent", "failed", or "dropped" (queue full or dispatcher
//     stopped before the job could be handed to a worker)
var EmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_total",
		Help:      "Total number of confirmation emails attempted, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of mails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of confirmation emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
