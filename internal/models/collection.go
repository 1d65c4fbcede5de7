package models

// Collection is one payment event recorded by a field agent, targeting either
// a single loan or a whole group.
type Collection struct {
	ID            string  `json:"id"`
	LoanID        string  `json:"loanId,omitempty"`
	GroupID       string  `json:"groupId,omitempty"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	CollectedBy   string  `json:"collectedBy,omitempty"`
}
