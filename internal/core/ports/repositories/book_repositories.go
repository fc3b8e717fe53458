package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pageturn/library_backend/internal/core/domain"
)

// BookReader defines read operations for catalog data.
type BookReader interface {
	// FindBookByID retrieves a specific book by its unique identifier.
	FindBookByID(ctx context.Context, bookID int64) (*domain.Book, error)

	// ListBooks retrieves a paginated list of books ordered by ID.
	ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error)
}

// BookWriter defines write operations for catalog data.
type BookWriter interface {
	// SaveBook persists a new book and returns it with its assigned ID.
	SaveBook(ctx context.Context, book domain.Book) (*domain.Book, error)

	// UpdateBook updates an existing book's details.
	UpdateBook(ctx context.Context, book domain.Book) error

	// DeleteBook removes a book from the catalog.
	DeleteBook(ctx context.Context, bookID int64) error
}

// BookTransactionSupport defines operations used inside borrowing transactions.
// The borrowing repository locks the book row before any inventory
// read-modify-write so concurrent borrowings serialize per book.
type BookTransactionSupport interface {
	// FindBookByIDForUpdate selects a book and locks its row within tx.
	FindBookByIDForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (*domain.Book, error)

	// UpdateBookInventoryInTx sets a book's inventory within tx.
	UpdateBookInventoryInTx(ctx context.Context, tx pgx.Tx, bookID int64, inventory int, now time.Time) error
}

// BookRepositoryFacade combines all book-related repository interfaces.
type BookRepositoryFacade interface {
	BookReader
	BookWriter
	BookTransactionSupport
}
