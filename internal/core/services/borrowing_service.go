package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pageturn/library_backend/internal/apperrors"
	"github.com/pageturn/library_backend/internal/core/domain"
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
	"github.com/pageturn/library_backend/internal/dto"
	"github.com/pageturn/library_backend/internal/middleware"
)

// borrowingService orchestrates the borrowing lifecycle and scoped queries.
type borrowingService struct {
	borrowingRepo portsrepo.BorrowingRepositoryFacade
	notifier      portssvc.NotifierSvc
}

// NewBorrowingService creates a new BorrowingService.
func NewBorrowingService(borrowingRepo portsrepo.BorrowingRepositoryFacade, notifier portssvc.NotifierSvc) portssvc.BorrowingSvcFacade {
	return &borrowingService{
		borrowingRepo: borrowingRepo,
		notifier:      notifier,
	}
}

// Ensure borrowingService implements the portssvc.BorrowingSvcFacade interface
var _ portssvc.BorrowingSvcFacade = (*borrowingService)(nil)

// CreateBorrowing validates the date invariants, then lets the repository run
// the inventory decrement and the borrowing insert as one transaction. The
// creation notification is queued only after that transaction committed and
// never influences the outcome.
func (s *borrowingService) CreateBorrowing(ctx context.Context, requestingUserID int64, req dto.CreateBorrowingRequest) (*domain.Borrowing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	today := domain.Today()
	if err := domain.ValidateDates(today, req.ExpectedReturnDate.Time, nil); err != nil {
		return nil, err
	}

	borrowing := domain.Borrowing{
		BorrowDate:         today,
		ExpectedReturnDate: req.ExpectedReturnDate.Time,
		BookID:             req.BookID,
		UserID:             requestingUserID,
	}

	created, err := s.borrowingRepo.SaveBorrowing(ctx, borrowing)
	if err != nil {
		logger.Warn("Failed to create borrowing", slog.Int64("book_id", req.BookID), slog.String("error", err.Error()))
		return nil, err
	}

	s.notifier.Notify(ctx, fmt.Sprintf(
		"A new borrowing has been created on %s.\nExpected return date is %s.",
		domain.FormatDate(created.BorrowDate), domain.FormatDate(created.ExpectedReturnDate)))

	logger.Info("Borrowing created", slog.Int64("borrowing_id", created.BorrowingID), slog.Int64("book_id", created.BookID))
	return created, nil
}

// ReturnBorrowing performs the one-way ACTIVE -> RETURNED transition. The
// already-returned check is repeated inside the repository transaction under a
// row lock, so two concurrent returns can never double-increment inventory.
func (s *borrowingService) ReturnBorrowing(ctx context.Context, requestingUserID int64, isAdmin bool, borrowingID int64) error {
	borrowing, err := s.GetBorrowingByID(ctx, requestingUserID, isAdmin, borrowingID)
	if err != nil {
		return err
	}
	if !borrowing.IsActive() {
		return apperrors.ErrAlreadyReturned
	}

	if err := s.borrowingRepo.MarkBorrowingReturned(ctx, borrowingID, domain.Today()); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Borrowing returned", slog.Int64("borrowing_id", borrowingID))
	return nil
}

// GetBorrowingByID retrieves a borrowing visible to the caller. Cross-user
// access by a non-admin yields ErrNotFound so record existence never leaks.
func (s *borrowingService) GetBorrowingByID(ctx context.Context, requestingUserID int64, isAdmin bool, borrowingID int64) (*domain.Borrowing, error) {
	borrowing, err := s.borrowingRepo.FindBorrowingByID(ctx, borrowingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && borrowing.UserID != requestingUserID {
		return nil, apperrors.ErrNotFound
	}
	return borrowing, nil
}

// ListBorrowings applies access scoping, then the is_active / user_id filters.
func (s *borrowingService) ListBorrowings(ctx context.Context, requestingUserID int64, isAdmin bool, params dto.ListBorrowingsParams) ([]domain.Borrowing, error) {
	filter := portsrepo.ListBorrowingsFilter{
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	if !isAdmin {
		// Non-privileged callers only ever see their own borrowings; any
		// requested user_id filter is ignored.
		uid := requestingUserID
		filter.UserID = &uid
	} else if params.UserID != nil {
		filter.UserID = params.UserID
	}

	if params.IsActive != nil {
		switch *params.IsActive {
		case "1":
			active := true
			filter.IsActive = &active
		case "0":
			active := false
			filter.IsActive = &active
		}
		// Any other value means no filter.
	}

	return s.borrowingRepo.ListBorrowings(ctx, filter)
}
