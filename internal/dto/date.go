package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/pageturn/library_backend/internal/core/domain"
)

// Date is a date-only JSON value in YYYY-MM-DD form.
type Date struct {
	time.Time
}

// NewDate wraps a time.Time as a wire date.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// NewDatePtr wraps an optional time.Time as an optional wire date.
func NewDatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(domain.DateFormat) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(domain.DateFormat, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	d.Time = t
	return nil
}
