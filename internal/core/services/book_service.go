package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pageturn/library_backend/internal/core/domain"
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
	"github.com/pageturn/library_backend/internal/dto"
	"github.com/pageturn/library_backend/internal/middleware"
)

// bookService provides catalog operations.
type bookService struct {
	bookRepo portsrepo.BookRepositoryFacade
}

// NewBookService creates a new BookService.
func NewBookService(bookRepo portsrepo.BookRepositoryFacade) portssvc.BookSvcFacade {
	return &bookService{bookRepo: bookRepo}
}

// Ensure bookService implements the portssvc.BookSvcFacade interface
var _ portssvc.BookSvcFacade = (*bookService)(nil)

func (s *bookService) CreateBook(ctx context.Context, req dto.CreateBookRequest) (*domain.Book, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	book := domain.Book{
		Title:     req.Title,
		Author:    req.Author,
		Cover:     domain.CoverType(req.Cover),
		Inventory: req.Inventory,
		DailyFee:  req.DailyFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	created, err := s.bookRepo.SaveBook(ctx, book)
	if err != nil {
		logger.Error("Failed to save book", slog.String("title", req.Title), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	logger.Info("Book created", slog.Int64("book_id", created.BookID))
	return created, nil
}

func (s *bookService) GetBookByID(ctx context.Context, bookID int64) (*domain.Book, error) {
	return s.bookRepo.FindBookByID(ctx, bookID)
}

func (s *bookService) ListBooks(ctx context.Context, limit, offset int) ([]domain.Book, error) {
	return s.bookRepo.ListBooks(ctx, limit, offset)
}

func (s *bookService) UpdateBook(ctx context.Context, bookID int64, req dto.UpdateBookRequest) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Cover != nil {
		book.Cover = domain.CoverType(*req.Cover)
	}
	if req.Inventory != nil {
		book.Inventory = *req.Inventory
	}
	if req.DailyFee != nil {
		book.DailyFee = *req.DailyFee
	}
	book.LastUpdatedAt = time.Now().UTC()

	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		return nil, fmt.Errorf("failed to update book %d: %w", bookID, err)
	}

	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, bookID int64) error {
	if err := s.bookRepo.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Book deleted", slog.Int64("book_id", bookID))
	return nil
}
