package models

// User roles. Policy caps the staff roster at one admin and two agents.
const (
	RoleAdmin = "Admin"
	RoleAgent = "Collection Agent"
)

type User struct {
	ID       string `json:"id"` // USRnnn, sequential
	Username string `json:"username"`
	Password string `json:"password"` // stored plaintext, matching the collection document format
	Role     string `json:"role"`     // Admin or Collection Agent
	CreatedAt string `json:"createdAt,omitempty"`
}

// CreateUserRequest represents the request body for creating a staff user
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest partially updates the user matching id
type UpdateUserRequest struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest represents the request body for opening a staff session
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
