package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PurchasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_total",
			Help: "Purchases by service category and outcome",
		},
		[]string{"category", "status"}, // status: successful|failed
	)

	WalletOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_operations_total",
			Help: "Wallet ledger operations",
		},
		[]string{"type"}, // credit|debit
	)

	ProviderCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Outbound billing provider calls",
		},
		[]string{"provider", "outcome"}, // outcome: ok|rejected|transport_error
	)

	PendingReleased = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_pending_released_total",
			Help: "Pending purchases released by the reconciler",
		},
	)
)

// Handler serves the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(PurchasesTotal)
	prometheus.MustRegister(WalletOpsTotal)
	prometheus.MustRegister(ProviderCallsTotal)
	prometheus.MustRegister(PendingReleased)
}
