package models

type Customer struct {
	ID               string `json:"id"` // CUSTnnn, sequential
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Occupation       string `json:"occupation,omitempty"`
	IDProofType      string `json:"idProofType,omitempty"`
	IDProofNumber    string `json:"idProofNumber,omitempty"`
	RegistrationDate string `json:"registrationDate"`
}

// CreateCustomerRequest represents the request body for registering a customer.
// Id is optional; a sequential CUSTnnn id is generated when absent or taken.
type CreateCustomerRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Occupation    string `json:"occupation"`
	IDProofType   string `json:"idProofType"`
	IDProofNumber string `json:"idProofNumber"`
}
