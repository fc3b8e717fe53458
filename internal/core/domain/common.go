package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// DateFormat is the wire and message format for all date-only values.
const DateFormat = "2006-01-02"

// Today returns the current UTC date truncated to midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date-only value the way it appears in messages and JSON.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
