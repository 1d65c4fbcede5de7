package schedule

import (
	"testing"
	"time"

	"mfin-backend/internal/models"
	"mfin-backend/internal/timeutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timeutil.IST)
}

func TestInstallmentsPaid(t *testing.T) {
	tests := []struct {
		name        string
		totalPaid   float64
		installment float64
		want        int
	}{
		{"nothing paid", 0, 1000, 0},
		{"partial installment", 999, 1000, 0},
		{"exact installments", 2000, 1000, 2},
		{"two and a half", 2500, 1000, 2},
		{"zero installment", 2500, 0, 0},
		{"negative paid", -100, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InstallmentsPaid(tt.totalPaid, tt.installment); got != tt.want {
				t.Errorf("InstallmentsPaid(%v, %v) = %d, want %d", tt.totalPaid, tt.installment, got, tt.want)
			}
		})
	}
}

func TestNextDueDate_Weekly(t *testing.T) {
	// Weekly loan, disbursed 2024-01-01, installment 1000, 2500 paid:
	// two installments covered, so the next due is disbursal + 3 weeks.
	disbursal := date(2024, time.January, 1)

	due, ok := NextDueDate(disbursal, models.FrequencyWeekly, 2500, 1000, models.LoanStatusActive)
	if !ok {
		t.Fatal("expected a due date for an active loan")
	}
	want := date(2024, time.January, 22)
	if !due.Equal(want) {
		t.Errorf("next due = %s, want %s", due.Format(timeutil.DateLayout), want.Format(timeutil.DateLayout))
	}
}

func TestNextDueDate_Frequencies(t *testing.T) {
	disbursal := date(2024, time.March, 15)

	tests := []struct {
		name string
		freq models.CollectionFrequency
		want time.Time
	}{
		{"daily advances by days", models.FrequencyDaily, date(2024, time.March, 16)},
		{"weekly advances by weeks", models.FrequencyWeekly, date(2024, time.March, 22)},
		{"monthly advances by calendar months", models.FrequencyMonthly, date(2024, time.April, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, ok := NextDueDate(disbursal, tt.freq, 0, 500, models.LoanStatusActive)
			if !ok {
				t.Fatal("expected a due date")
			}
			if !due.Equal(tt.want) {
				t.Errorf("next due = %s, want %s", due.Format(timeutil.DateLayout), tt.want.Format(timeutil.DateLayout))
			}
		})
	}
}

func TestNextDueDate_ZeroInstallment(t *testing.T) {
	// weeklyRepayment == 0 defaults installmentsPaid to 0,
	// so the due date is one period after disbursal.
	disbursal := date(2024, time.June, 1)

	due, ok := NextDueDate(disbursal, models.FrequencyWeekly, 5000, 0, models.LoanStatusActive)
	if !ok {
		t.Fatal("expected a due date")
	}
	want := date(2024, time.June, 8)
	if !due.Equal(want) {
		t.Errorf("next due = %s, want %s", due.Format(timeutil.DateLayout), want.Format(timeutil.DateLayout))
	}
}

func TestNextDueDate_NoDueForTerminalStates(t *testing.T) {
	disbursal := date(2024, time.January, 1)

	for _, status := range []models.LoanStatus{
		models.LoanStatusPending,
		models.LoanStatusClosed,
		models.LoanStatusPreClosed,
	} {
		if _, ok := NextDueDate(disbursal, models.FrequencyWeekly, 0, 1000, status); ok {
			t.Errorf("status %s: expected no due date", status)
		}
	}

	// Missed and Overdue loans still carry a due date
	if _, ok := NextDueDate(disbursal, models.FrequencyWeekly, 0, 1000, models.LoanStatusMissed); !ok {
		t.Error("Missed: expected a due date")
	}
	if _, ok := NextDueDate(disbursal, models.FrequencyWeekly, 0, 1000, models.LoanStatusOverdue); !ok {
		t.Error("Overdue: expected a due date")
	}
}

func TestNextDueDate_UnsetDisbursal(t *testing.T) {
	if _, ok := NextDueDate(time.Time{}, models.FrequencyWeekly, 0, 1000, models.LoanStatusActive); ok {
		t.Error("expected no due date without a disbursal date")
	}
}

func TestResolveStatus(t *testing.T) {
	today := date(2024, time.May, 10)
	yesterday := date(2024, time.May, 9)
	tomorrow := date(2024, time.May, 11)

	tests := []struct {
		name   string
		status models.LoanStatus
		due    time.Time
		hasDue bool
		want   models.LoanStatus
	}{
		{"active past due becomes overdue", models.LoanStatusActive, yesterday, true, models.LoanStatusOverdue},
		{"active due today stays active", models.LoanStatusActive, today, true, models.LoanStatusActive},
		{"active due tomorrow stays active", models.LoanStatusActive, tomorrow, true, models.LoanStatusActive},
		{"overdue past due stays overdue", models.LoanStatusOverdue, yesterday, true, models.LoanStatusOverdue},
		{"overdue due today reverts to active", models.LoanStatusOverdue, today, true, models.LoanStatusActive},
		{"overdue due tomorrow reverts to active", models.LoanStatusOverdue, tomorrow, true, models.LoanStatusActive},
		{"pending untouched", models.LoanStatusPending, yesterday, true, models.LoanStatusPending},
		{"closed untouched", models.LoanStatusClosed, yesterday, true, models.LoanStatusClosed},
		{"pre-closed untouched", models.LoanStatusPreClosed, yesterday, true, models.LoanStatusPreClosed},
		{"missed untouched", models.LoanStatusMissed, yesterday, true, models.LoanStatusMissed},
		{"active without due date unchanged", models.LoanStatusActive, time.Time{}, false, models.LoanStatusActive},
		{"overdue without due date unchanged", models.LoanStatusOverdue, time.Time{}, false, models.LoanStatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(tt.status, tt.due, tt.hasDue, today)
			if got != tt.want {
				t.Errorf("ResolveStatus(%s) = %s, want %s", tt.status, got, tt.want)
			}
			// Idempotence: resolving the resolved status again is a no-op
			if again := ResolveStatus(got, tt.due, tt.hasDue, today); again != got {
				t.Errorf("not idempotent: second resolve gave %s, first gave %s", again, got)
			}
		})
	}
}

func TestInstallment(t *testing.T) {
	// 10000 at 10% over 10 periods: (10000 + 1000) / 10 = 1100
	if got := Installment(10000, 10, 10); got != 1100 {
		t.Errorf("Installment = %v, want 1100", got)
	}
	if got := Installment(10000, 10, 0); got != 0 {
		t.Errorf("Installment with zero term = %v, want 0", got)
	}
}
