package repositories

import (
	"context"
	"time"

	"github.com/pageturn/library_backend/internal/core/domain"
)

// ListBorrowingsFilter narrows the borrowings returned by ListBorrowings.
// A nil field means "no filter". Callers are responsible for access scoping;
// the repository applies any filter it is given.
type ListBorrowingsFilter struct {
	UserID   *int64
	IsActive *bool
	Limit    int
	Offset   int
}

// BorrowingReader defines read operations for borrowing data.
type BorrowingReader interface {
	// FindBorrowingByID retrieves a borrowing with its book populated.
	FindBorrowingByID(ctx context.Context, borrowingID int64) (*domain.Borrowing, error)

	// ListBorrowings retrieves borrowings matching the filter, joined with
	// their books, deduplicated and in stable ID order.
	ListBorrowings(ctx context.Context, filter ListBorrowingsFilter) ([]domain.Borrowing, error)
}

// BorrowingWriter defines the transactional write operations on borrowings.
// Both methods execute the inventory change and the borrowing row change as a
// single database transaction; no partial state is ever observable.
type BorrowingWriter interface {
	// SaveBorrowing locks the referenced book row, verifies inventory >= 1,
	// decrements it and inserts the borrowing. Returns the created borrowing
	// with its assigned ID. Fails with apperrors.ErrBookUnavailable when no
	// copy is left and apperrors.ErrNotFound when the book does not exist.
	SaveBorrowing(ctx context.Context, borrowing domain.Borrowing) (*domain.Borrowing, error)

	// MarkBorrowingReturned locks the borrowing row, fails with
	// apperrors.ErrAlreadyReturned when actual_return_date is already set,
	// otherwise sets it to returnDate and increments the book's inventory.
	MarkBorrowingReturned(ctx context.Context, borrowingID int64, returnDate time.Time) error
}

// BorrowingRepositoryFacade combines all borrowing-related repository interfaces.
type BorrowingRepositoryFacade interface {
	BorrowingReader
	BorrowingWriter
}
