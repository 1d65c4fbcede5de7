package models

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "Pending"
	LoanStatusActive    LoanStatus = "Active"
	LoanStatusOverdue   LoanStatus = "Overdue"
	LoanStatusClosed    LoanStatus = "Closed"
	LoanStatusMissed    LoanStatus = "Missed"
	LoanStatusPreClosed LoanStatus = "Pre-closed"
)

// CollectionFrequency is how often an installment falls due
type CollectionFrequency string

const (
	FrequencyDaily   CollectionFrequency = "Daily"
	FrequencyWeekly  CollectionFrequency = "Weekly"
	FrequencyMonthly CollectionFrequency = "Monthly"
)

// Loan is one loan record. A personal loan is a single record; a group loan
// is one record per member, all sharing a groupId. Before approval the id is
// a provisional TEMP_xxxx token and the groupId (if any) a provisional group
// token; approval replaces both with the operator-assigned ledger id.
type Loan struct {
	ID              string  `json:"id"`
	GroupID         string  `json:"groupId,omitempty"`
	GroupName       string  `json:"groupName,omitempty"`
	GroupLeaderName string  `json:"groupLeaderName,omitempty"`
	CustomerID      string  `json:"customerId"`
	CustomerName    string  `json:"customerName"`
	Amount          float64 `json:"amount"`
	InterestRate    float64 `json:"interestRate"`
	Term            int     `json:"term"`

	CollectionFrequency CollectionFrequency `json:"collectionFrequency"`

	// WeeklyRepayment is the flat per-period installment,
	// (amount + amount*interestRate/100) / term, regardless of frequency label.
	WeeklyRepayment float64 `json:"weeklyRepayment"`

	Status LoanStatus `json:"status"`

	// DisbursalDate is set at approval (not creation), date-only "2006-01-02".
	DisbursalDate string `json:"disbursalDate,omitempty"`

	// NextDueDate is derived on every read, never authoritative.
	NextDueDate string `json:"nextDueDate,omitempty"`

	TotalPaid         float64 `json:"totalPaid"`
	OutstandingAmount float64 `json:"outstandingAmount"`

	CreatedAt string `json:"createdAt,omitempty"`
}

// IsGroup reports whether the loan belongs to a group
func (l *Loan) IsGroup() bool {
	return l.GroupID != ""
}

// CreateLoanRequest represents the request body for creating a loan.
// Id and groupId are optional; provisional tokens are generated when absent.
type CreateLoanRequest struct {
	ID                  string              `json:"id"`
	GroupID             string              `json:"groupId"`
	GroupName           string              `json:"groupName"`
	GroupLeaderName     string              `json:"groupLeaderName"`
	CustomerID          string              `json:"customerId"`
	CustomerName        string              `json:"customerName"`
	Amount              float64             `json:"amount"`
	InterestRate        float64             `json:"interestRate"`
	Term                int                 `json:"term"`
	CollectionFrequency CollectionFrequency `json:"collectionFrequency"`
}

// ApproveLoanRequest approves a pending loan (or a whole pending group),
// assigning the operator-supplied ledger id.
type ApproveLoanRequest struct {
	ID       string `json:"id"`
	GroupID  string `json:"groupId"`
	LedgerID string `json:"ledgerId"`
}

// RecordPaymentRequest records a collection against a single loan or,
// when groupId is set, split evenly across all members of the group.
type RecordPaymentRequest struct {
	LoanID        string  `json:"loanId"`
	GroupID       string  `json:"groupId"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"paymentMethod"`
	CollectedBy   string  `json:"collectedBy"`
}

// UpdateLoanRequest merges a partial-change object into the loan matching id.
// Used for status-only changes (e.g. Pre-close) rather than domain operations.
type UpdateLoanRequest struct {
	ID      string                 `json:"id"`
	Changes map[string]interface{} `json:"changes"`
}

// LoanGroupView is the read-only projection of one group for display/reporting
type LoanGroupView struct {
	GroupID          string     `json:"groupId"`
	GroupName        string     `json:"groupName"`
	GroupLeaderName  string     `json:"groupLeaderName"`
	Members          []Loan     `json:"members"`
	TotalAmount      float64    `json:"totalAmount"`
	TotalOutstanding float64    `json:"totalOutstanding"`
	Status           LoanStatus `json:"status"`
}

// LoanBookView partitions the loan book into groups and standalone personal loans
type LoanBookView struct {
	Groups   []LoanGroupView `json:"groups"`
	Personal []Loan          `json:"personal"`
}
