package domain

import (
	"fmt"
	"time"

	"github.com/pageturn/library_backend/internal/apperrors"
)

// Borrowing represents one loan transaction linking a user to a book copy.
// It owns its date fields; Book and User are held by reference only.
//
// A borrowing is ACTIVE while ActualReturnDate is nil and becomes RETURNED
// once it is set. RETURNED is terminal.
type Borrowing struct {
	BorrowingID        int64      `json:"id"`
	BorrowDate         time.Time  `json:"borrow_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`
	BookID             int64      `json:"book_id"`
	UserID             int64      `json:"user_id"`

	// Book is populated on reads that join the catalog.
	Book *Book `json:"book,omitempty"`
}

// IsActive reports whether the book has not been returned yet.
func (b Borrowing) IsActive() bool {
	return b.ActualReturnDate == nil
}

// ValidateDates checks the ordering invariants between the borrowing dates.
// A zero borrowDate defaults to today. It is a pure function, usable both at
// construction time and before any persist.
func ValidateDates(borrowDate, expectedReturnDate time.Time, actualReturnDate *time.Time) error {
	if borrowDate.IsZero() {
		borrowDate = Today()
	}

	if !borrowDate.Before(expectedReturnDate) {
		return apperrors.NewValidationError(fmt.Sprintf(
			"Borrow date should be earlier than expected return date. Borrow date is %s, and expected return date is %s.",
			FormatDate(borrowDate), FormatDate(expectedReturnDate)))
	}

	if actualReturnDate != nil && !borrowDate.Before(*actualReturnDate) {
		return apperrors.NewValidationError(fmt.Sprintf(
			"Borrow date should be earlier than actual return date. Borrow date is %s, and actual return date is %s.",
			FormatDate(borrowDate), FormatDate(*actualReturnDate)))
	}

	return nil
}
