package models

// UserActivity is one entry of the append-only staff audit log.
// The log is stored newest-first; posting prepends.
type UserActivity struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Detail    string `json:"detail,omitempty"`
	Timestamp string `json:"timestamp"`
}
