package domain

// User represents a registered library member.
// IsAdmin grants visibility over other users' borrowings.
type User struct {
	UserID       int64  `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
	AuditFields
}
