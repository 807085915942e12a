// Package metrics defines the Prometheus collectors for the
// money-movement core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digiwallet_transactions_total",
			Help: "Total number of processed transactions",
		},
		[]string{"type", "status"},
	)

	TransactionAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "digiwallet_transaction_amount",
			Help:    "Distribution of transaction amounts",
			Buckets: prometheus.ExponentialBuckets(1, 10, 8),
		},
		[]string{"type"},
	)

	IdempotencyConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "digiwallet_idempotency_conflicts_total",
			Help: "Total number of duplicate requests rejected by the idempotency guard",
		},
	)

	FraudChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digiwallet_fraud_checks_total",
			Help: "Total number of fraud assessments by verdict",
		},
		[]string{"verdict"},
	)

	SchedulerRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "digiwallet_scheduler_runs_total",
			Help: "Total number of recurring payment polling runs",
		},
	)

	ScheduledPaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digiwallet_scheduled_payments_total",
			Help: "Total number of scheduled payment executions by outcome",
		},
		[]string{"outcome"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digiwallet_events_published_total",
			Help: "Total number of events published to the bus",
		},
		[]string{"kind", "status"},
	)
)
