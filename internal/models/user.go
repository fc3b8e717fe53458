package models

// User is the database representation of a library member.
type User struct {
	UserID       int64  `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`
	AuditFields
}
