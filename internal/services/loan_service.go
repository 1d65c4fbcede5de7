package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"mfin-backend/internal/metrics"
	"mfin-backend/internal/models"
	"mfin-backend/internal/schedule"
	"mfin-backend/internal/timeutil"
)

// LoanBook is the loan persistence surface the service needs. Satisfied by
// repositories.LoanRepository; tests inject an in-memory fake.
type LoanBook interface {
	Mutate(ctx context.Context, fn func([]models.Loan) ([]models.Loan, error)) ([]models.Loan, error)
}

// PaymentLog records one Collection event per successful payment
type PaymentLog interface {
	Append(ctx context.Context, c models.Collection) error
}

// errUnchanged aborts a Mutate write when a read-path resolution pass found
// nothing to persist.
var errUnchanged = errors.New("no change")

// LoanService owns the loan book: creation, approval, payments, updates and
// the group projection. Statuses and next due dates are derived on every read.
type LoanService struct {
	loans    LoanBook
	payments PaymentLog
}

func NewLoanService(loans LoanBook, payments PaymentLog) *LoanService {
	return &LoanService{loans: loans, payments: payments}
}

// List returns the loan book with statuses and next due dates resolved
// against today's IST date. Resolved statuses are written back when they
// differ from the stored values; a failed write-back only loses the
// opportunistic persist, never the response.
func (s *LoanService) List(ctx context.Context) ([]models.Loan, error) {
	today := timeutil.Today()

	var snapshot []models.Loan
	_, err := s.loans.Mutate(ctx, func(loans []models.Loan) ([]models.Loan, error) {
		changed := resolveAll(loans, today)
		snapshot = loans
		if !changed {
			return nil, errUnchanged
		}
		return loans, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return nil, err
	}
	return snapshot, nil
}

// Create registers a new Pending loan. Installment and outstanding amounts
// are derived when the request omits them; provisional id and group tokens
// are generated when absent.
func (s *LoanService) Create(ctx context.Context, req models.CreateLoanRequest) (*models.Loan, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if req.Term <= 0 {
		return nil, fmt.Errorf("%w: term must be positive", ErrValidation)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customerName is required", ErrValidation)
	}

	loan := models.Loan{
		ID:                  req.ID,
		GroupID:             req.GroupID,
		GroupName:           req.GroupName,
		GroupLeaderName:     req.GroupLeaderName,
		CustomerID:          req.CustomerID,
		CustomerName:        req.CustomerName,
		Amount:              req.Amount,
		InterestRate:        req.InterestRate,
		Term:                req.Term,
		CollectionFrequency: req.CollectionFrequency,
		WeeklyRepayment:     schedule.Installment(req.Amount, req.InterestRate, req.Term),
		Status:              models.LoanStatusPending,
		TotalPaid:           0,
		OutstandingAmount:   schedule.TotalObligation(req.Amount, req.InterestRate),
		CreatedAt:           timeutil.Now().Format(timeutil.DateTimeLayout),
	}
	if loan.CollectionFrequency == "" {
		loan.CollectionFrequency = models.FrequencyWeekly
	}
	if loan.ID == "" {
		loan.ID = provisionalToken("TEMP_")
	}
	if loan.GroupID == "" && loan.GroupName != "" {
		loan.GroupID = provisionalToken("GRP_")
	}

	_, err := s.loans.Mutate(ctx, func(loans []models.Loan) ([]models.Loan, error) {
		for _, l := range loans {
			if l.ID == loan.ID {
				loan.ID = provisionalToken("TEMP_")
				break
			}
		}
		return append(loans, loan), nil
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Approve activates a pending loan, or a whole pending group when the request
// carries a group token. The operator-supplied ledger id becomes the loan id
// (group members get {ledgerId}-{GroupName}-{n}); status becomes Active and
// the disbursal date is set to today. A ledger id collision anywhere in the
// book aborts the whole approval with no partial writes.
func (s *LoanService) Approve(ctx context.Context, req models.ApproveLoanRequest) ([]models.Loan, error) {
	ledgerID := strings.TrimSpace(req.LedgerID)
	if ledgerID == "" {
		return nil, fmt.Errorf("%w: ledgerId is required", ErrValidation)
	}
	today := timeutil.FormatDate(timeutil.Today())

	var approved []models.Loan
	_, err := s.loans.Mutate(ctx, func(loans []models.Loan) ([]models.Loan, error) {
		if req.GroupID != "" {
			return s.approveGroup(loans, req.GroupID, ledgerID, today, &approved)
		}
		return s.approvePersonal(loans, req.ID, ledgerID, today, &approved)
	})
	if err != nil {
		return nil, err
	}
	metrics.LoansApproved.Add(float64(len(approved)))
	return approved, nil
}

func (s *LoanService) approvePersonal(loans []models.Loan, id, ledgerID, today string, approved *[]models.Loan) ([]models.Loan, error) {
	idx := -1
	for i := range loans {
		if loans[i].ID == id {
			idx = i
			continue
		}
		if loans[i].ID == ledgerID {
			return nil, fmt.Errorf("%w: %s", ErrLedgerIDConflict, ledgerID)
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrLoanNotFound, id)
	}

	loans[idx].ID = ledgerID
	loans[idx].Status = models.LoanStatusActive
	loans[idx].DisbursalDate = today
	*approved = append(*approved, loans[idx])
	return loans, nil
}

func (s *LoanService) approveGroup(loans []models.Loan, groupID, ledgerID, today string, approved *[]models.Loan) ([]models.Loan, error) {
	var members []int
	for i := range loans {
		if loans[i].GroupID == groupID {
			members = append(members, i)
		}
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	groupName := stripWhitespace(loans[members[0]].GroupName)
	newIDs := make([]string, len(members))
	for n := range members {
		newIDs[n] = fmt.Sprintf("%s-%s-%d", ledgerID, groupName, n+1)
	}

	// Conflict-check every new id against the rest of the book before
	// touching anything, so a collision leaves the group untouched.
	inGroup := make(map[int]bool, len(members))
	for _, i := range members {
		inGroup[i] = true
	}
	for i := range loans {
		if inGroup[i] {
			continue
		}
		for _, id := range newIDs {
			if loans[i].ID == id {
				return nil, fmt.Errorf("%w: %s", ErrLedgerIDConflict, id)
			}
		}
	}

	for n, i := range members {
		loans[i].ID = newIDs[n]
		loans[i].GroupID = ledgerID
		loans[i].Status = models.LoanStatusActive
		loans[i].DisbursalDate = today
		*approved = append(*approved, loans[i])
	}
	return loans, nil
}

// RecordPayment applies a payment to a single loan, or splits it in equal
// float shares across every member of a group. Over-payment driving the
// outstanding amount negative is allowed. Each successful payment appends a
// Collection event.
func (s *LoanService) RecordPayment(ctx context.Context, req models.RecordPaymentRequest) ([]models.Loan, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	var updated []models.Loan
	_, err := s.loans.Mutate(ctx, func(loans []models.Loan) ([]models.Loan, error) {
		if req.GroupID != "" {
			var members []int
			for i := range loans {
				if loans[i].GroupID == req.GroupID {
					members = append(members, i)
				}
			}
			if len(members) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, req.GroupID)
			}
			share := req.Amount / float64(len(members))
			for _, i := range members {
				loans[i].TotalPaid += share
				loans[i].OutstandingAmount -= share
				updated = append(updated, loans[i])
			}
			return loans, nil
		}

		for i := range loans {
			if loans[i].ID == req.LoanID {
				loans[i].TotalPaid += req.Amount
				loans[i].OutstandingAmount -= req.Amount
				updated = append(updated, loans[i])
				return loans, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrLoanNotFound, req.LoanID)
	})
	if err != nil {
		return nil, err
	}

	event := models.Collection{
		ID:            uuid.NewString(),
		LoanID:        req.LoanID,
		GroupID:       req.GroupID,
		Amount:        req.Amount,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		CollectedBy:   req.CollectedBy,
	}
	if event.Date == "" {
		event.Date = timeutil.FormatDate(timeutil.Today())
	}
	if err := s.payments.Append(ctx, event); err != nil {
		log.Printf("[Loans] payment applied but event log append failed: %v", err)
	}
	metrics.PaymentsRecorded.Inc()
	metrics.PaymentAmount.Add(req.Amount)
	return updated, nil
}

// Update shallow-merges a partial-change object into the loan matching id.
// Keys that are not loan fields are dropped by the merge.
func (s *LoanService) Update(ctx context.Context, req models.UpdateLoanRequest) (*models.Loan, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	if len(req.Changes) == 0 {
		return nil, fmt.Errorf("%w: changes object is empty", ErrValidation)
	}

	var updated models.Loan
	_, err := s.loans.Mutate(ctx, func(loans []models.Loan) ([]models.Loan, error) {
		for i := range loans {
			if loans[i].ID != req.ID {
				continue
			}
			merged, err := mergeLoan(loans[i], req.Changes)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			merged.ID = req.ID
			loans[i] = merged
			updated = loans[i]
			return loans, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrLoanNotFound, req.ID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the loan matching id from the book
func (s *LoanService) Delete(ctx context.Context, id string) error {
	_, err := s.loans.Mutate(ctx, func(loans []models.Loan) ([]models.Loan, error) {
		for i := range loans {
			if loans[i].ID == id {
				return append(loans[:i], loans[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrLoanNotFound, id)
	})
	return err
}

// Groups partitions the resolved loan book into group projections and
// standalone personal loans, preserving first-seen group order.
func (s *LoanService) Groups(ctx context.Context) (*models.LoanBookView, error) {
	loans, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	view := &models.LoanBookView{
		Groups:   []models.LoanGroupView{},
		Personal: []models.Loan{},
	}
	index := map[string]int{}
	for _, l := range loans {
		if !l.IsGroup() {
			view.Personal = append(view.Personal, l)
			continue
		}
		i, ok := index[l.GroupID]
		if !ok {
			i = len(view.Groups)
			index[l.GroupID] = i
			view.Groups = append(view.Groups, models.LoanGroupView{
				GroupID:         l.GroupID,
				GroupName:       l.GroupName,
				GroupLeaderName: l.GroupLeaderName,
			})
		}
		g := &view.Groups[i]
		g.Members = append(g.Members, l)
		g.TotalAmount += l.Amount
		g.TotalOutstanding += l.OutstandingAmount
	}
	for i := range view.Groups {
		view.Groups[i].Status = groupStatus(view.Groups[i].Members)
	}
	return view, nil
}

// groupStatus aggregates member statuses by priority: any Overdue wins, then
// any Active; Closed and Pre-closed only when unanimous; Pending otherwise.
func groupStatus(members []models.Loan) models.LoanStatus {
	allClosed := len(members) > 0
	allPreClosed := len(members) > 0
	anyActive := false
	for _, m := range members {
		switch m.Status {
		case models.LoanStatusOverdue:
			return models.LoanStatusOverdue
		case models.LoanStatusActive:
			anyActive = true
		}
		if m.Status != models.LoanStatusClosed {
			allClosed = false
		}
		if m.Status != models.LoanStatusPreClosed {
			allPreClosed = false
		}
	}
	switch {
	case anyActive:
		return models.LoanStatusActive
	case allClosed:
		return models.LoanStatusClosed
	case allPreClosed:
		return models.LoanStatusPreClosed
	default:
		return models.LoanStatusPending
	}
}

// resolveAll refreshes the derived fields of every loan in place and reports
// whether any stored status changed.
func resolveAll(loans []models.Loan, today time.Time) bool {
	changed := false
	for i := range loans {
		l := &loans[i]

		var disbursal time.Time
		if l.DisbursalDate != "" {
			d, err := timeutil.ParseDate(l.DisbursalDate)
			if err != nil {
				log.Printf("[Loans] loan %s has malformed disbursal date %q", l.ID, l.DisbursalDate)
			} else {
				disbursal = d
			}
		}

		due, hasDue := schedule.NextDueDate(disbursal, l.CollectionFrequency, l.TotalPaid, l.WeeklyRepayment, l.Status)
		next := ""
		if hasDue {
			next = timeutil.FormatDate(due)
		}
		l.NextDueDate = next

		resolved := schedule.ResolveStatus(l.Status, due, hasDue, today)
		if resolved != l.Status {
			l.Status = resolved
			changed = true
		}
	}
	return changed
}

// mergeLoan applies a partial-change object over a loan via a JSON round
// trip, so wire-format keys line up with struct fields.
func mergeLoan(loan models.Loan, changes map[string]interface{}) (models.Loan, error) {
	raw, err := json.Marshal(loan)
	if err != nil {
		return loan, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return loan, err
	}
	for k, v := range changes {
		doc[k] = v
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return loan, err
	}
	var merged models.Loan
	if err := json.Unmarshal(buf, &merged); err != nil {
		return loan, err
	}
	return merged, nil
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func provisionalToken(prefix string) string {
	return prefix + strings.ToUpper(uuid.NewString()[:8])
}
