package models

// Financials is the composite document backing /api/financials: two free-form
// arrays, replaced wholesale on every POST.
type Financials struct {
	Investments []map[string]interface{} `json:"investments"`
	Expenses    []map[string]interface{} `json:"expenses"`
}
