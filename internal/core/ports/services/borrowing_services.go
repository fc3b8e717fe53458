package services

import (
	"context"

	"github.com/pageturn/library_backend/internal/core/domain"
	"github.com/pageturn/library_backend/internal/dto"
)

// BorrowingReaderSvc defines read operations on borrowings. All reads are
// access scoped: non-admin callers only ever see their own borrowings, and a
// cross-user lookup yields apperrors.ErrNotFound rather than ErrForbidden so
// record existence is never leaked.
type BorrowingReaderSvc interface {
	// GetBorrowingByID retrieves a borrowing visible to the caller,
	// with its book populated.
	GetBorrowingByID(ctx context.Context, requestingUserID int64, isAdmin bool, borrowingID int64) (*domain.Borrowing, error)

	// ListBorrowings lists borrowings visible to the caller. The user_id
	// filter is honored for admin callers only.
	ListBorrowings(ctx context.Context, requestingUserID int64, isAdmin bool, params dto.ListBorrowingsParams) ([]domain.Borrowing, error)
}

// BorrowingLifecycleSvc defines the borrowing lifecycle transitions.
type BorrowingLifecycleSvc interface {
	// CreateBorrowing validates dates, atomically decrements the book's
	// inventory and persists the borrowing with borrow_date = today, then
	// queues a creation notification (best effort, after commit).
	CreateBorrowing(ctx context.Context, requestingUserID int64, req dto.CreateBorrowingRequest) (*domain.Borrowing, error)

	// ReturnBorrowing performs the one-way ACTIVE -> RETURNED transition,
	// atomically incrementing the book's inventory. A second call fails with
	// apperrors.ErrAlreadyReturned and never double-increments.
	ReturnBorrowing(ctx context.Context, requestingUserID int64, isAdmin bool, borrowingID int64) error
}

// BorrowingSvcFacade combines all borrowing-related service interfaces.
type BorrowingSvcFacade interface {
	BorrowingReaderSvc
	BorrowingLifecycleSvc
}
