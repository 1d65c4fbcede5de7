package schedule

import (
	"time"

	"mfin-backend/internal/models"
)

// InstallmentsPaid is how many whole installments the repayments to date
// cover. Payments are applied in whole-installment units; no
// partial-installment carry is tracked.
func InstallmentsPaid(totalPaid, installment float64) int {
	if totalPaid <= 0 || installment <= 0 {
		return 0
	}
	return int(totalPaid / installment)
}

// NextDueDate derives the due date of the next unpaid installment from the
// disbursal date, collection frequency and repayments to date. The second
// return is false when the loan has no due date: terminal or not yet
// disbursed (Pending, Closed, Pre-closed, or a zero disbursal date).
//
// The date is the disbursal date advanced by installmentsPaid+1 periods,
// assuming exactly one installment falls due per period.
func NextDueDate(disbursal time.Time, freq models.CollectionFrequency, totalPaid, installment float64, status models.LoanStatus) (time.Time, bool) {
	switch status {
	case models.LoanStatusPending, models.LoanStatusClosed, models.LoanStatusPreClosed:
		return time.Time{}, false
	}
	if disbursal.IsZero() {
		return time.Time{}, false
	}

	periods := InstallmentsPaid(totalPaid, installment) + 1

	switch freq {
	case models.FrequencyDaily:
		return disbursal.AddDate(0, 0, periods), true
	case models.FrequencyMonthly:
		return disbursal.AddDate(0, periods, 0), true
	default:
		// Weekly, and the fallback for unlabelled records
		return disbursal.AddDate(0, 0, 7*periods), true
	}
}

// ResolveStatus derives the Active/Overdue oscillation from the next due date
// and today's date (date-only comparison). It is pure and idempotent, applied
// to every loan on every read rather than persisted as a transition log.
// Pending, Closed, Pre-closed and Missed are left untouched.
func ResolveStatus(status models.LoanStatus, due time.Time, hasDue bool, today time.Time) models.LoanStatus {
	if status != models.LoanStatusActive && status != models.LoanStatusOverdue {
		return status
	}
	if hasDue && due.Before(today) {
		return models.LoanStatusOverdue
	}
	if status == models.LoanStatusOverdue && hasDue && !due.Before(today) {
		return models.LoanStatusActive
	}
	return status
}

// Installment computes the flat per-period repayment of a loan:
// (principal + total interest) spread evenly over the term.
func Installment(amount, interestRate float64, term int) float64 {
	if term <= 0 {
		return 0
	}
	return (amount + amount*interestRate/100) / float64(term)
}

// TotalObligation is the full amount a borrower owes over the life of the
// loan: principal plus flat interest.
func TotalObligation(amount, interestRate float64) float64 {
	return amount + amount*interestRate/100
}
