package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mfin_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mfin_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// LoansApproved counts approved loans (group approvals count every member)
	LoansApproved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mfin_loans_approved_total",
			Help: "Total number of loans approved",
		},
	)

	// PaymentsRecorded counts recorded payment events
	PaymentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mfin_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
	)

	// PaymentAmount accumulates the total amount collected
	PaymentAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mfin_payment_amount_total",
			Help: "Total amount collected across all payments",
		},
	)

	// BackupRuns counts backup attempts by outcome (success/failure)
	BackupRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mfin_backup_runs_total",
			Help: "Total number of collection backup runs",
		},
		[]string{"outcome"},
	)
)
