package services

import (
	"context"

	"github.com/pageturn/library_backend/internal/core/domain"
	"github.com/pageturn/library_backend/internal/dto"
)

// BookReaderSvc defines read operations on the catalog.
type BookReaderSvc interface {
	// GetBookByID retrieves a book by ID.
	GetBookByID(ctx context.Context, bookID int64) (*domain.Book, error)

	// ListBooks retrieves a paginated list of books.
	ListBooks(ctx context.Context, limit, offset int) ([]domain.Book, error)
}

// BookWriterSvc defines write operations on the catalog.
// Handlers restrict these to admin callers.
type BookWriterSvc interface {
	// CreateBook adds a new book to the catalog.
	CreateBook(ctx context.Context, req dto.CreateBookRequest) (*domain.Book, error)

	// UpdateBook updates an existing book.
	UpdateBook(ctx context.Context, bookID int64, req dto.UpdateBookRequest) (*domain.Book, error)

	// DeleteBook removes a book from the catalog.
	DeleteBook(ctx context.Context, bookID int64) error
}

// BookSvcFacade combines all book-related service interfaces.
type BookSvcFacade interface {
	BookReaderSvc
	BookWriterSvc
}
