package models

import "time"

// Borrowing is the database representation of one loan transaction.
type Borrowing struct {
	BorrowingID        int64      `db:"borrowing_id"`
	BorrowDate         time.Time  `db:"borrow_date"`
	ExpectedReturnDate time.Time  `db:"expected_return_date"`
	ActualReturnDate   *time.Time `db:"actual_return_date"`
	BookID             int64      `db:"book_id"`
	UserID             int64      `db:"user_id"`
	AuditFields
}
