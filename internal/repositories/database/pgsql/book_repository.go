package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pageturn/library_backend/internal/apperrors"
	"github.com/pageturn/library_backend/internal/core/domain"
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	"github.com/pageturn/library_backend/internal/models"
	"github.com/pageturn/library_backend/internal/utils/mapping"
)

type PgxBookRepository struct {
	BaseRepository
}

// newPgxBookRepository creates a new repository for catalog data.
func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepositoryFacade {
	return &PgxBookRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBookRepository implements portsrepo.BookRepositoryFacade
var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book) (*domain.Book, error) {
	modelBook := mapping.ToModelBook(book)
	query := `
		INSERT INTO books (title, author, cover, inventory, daily_fee, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING book_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		modelBook.Title,
		modelBook.Author,
		modelBook.Cover,
		modelBook.Inventory,
		modelBook.DailyFee,
		modelBook.CreatedAt,
		modelBook.LastUpdatedAt,
	).Scan(&book.BookID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert book", err)
	}
	return &book, nil
}

func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID int64) (*domain.Book, error) {
	query := `
		SELECT book_id, title, author, cover, inventory, daily_fee, created_at, last_updated_at
		FROM books
		WHERE book_id = $1;
	`
	modelBook, err := scanBook(r.Pool.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book %d: %w", bookID, err)
	}

	domainBook := mapping.ToDomainBook(*modelBook)
	return &domainBook, nil
}

func (r *PgxBookRepository) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT book_id, title, author, cover, inventory, daily_fee, created_at, last_updated_at
		FROM books
		ORDER BY book_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var modelBooks []models.Book
	for rows.Next() {
		modelBook, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		modelBooks = append(modelBooks, *modelBook)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating book rows: %w", err)
	}

	return mapping.ToDomainBookSlice(modelBooks), nil
}

func (r *PgxBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	modelBook := mapping.ToModelBook(book)
	query := `
		UPDATE books
		SET title = $2, author = $3, cover = $4, inventory = $5, daily_fee = $6, last_updated_at = $7
		WHERE book_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelBook.BookID,
		modelBook.Title,
		modelBook.Author,
		modelBook.Cover,
		modelBook.Inventory,
		modelBook.DailyFee,
		modelBook.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update book %d", book.BookID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBookRepository) DeleteBook(ctx context.Context, bookID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM books WHERE book_id = $1;`, bookID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete book %d", bookID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBookByIDForUpdate selects a book and locks its row within tx. Every
// inventory read-modify-write goes through this lock so concurrent borrowings
// of the same book serialize.
func (r *PgxBookRepository) FindBookByIDForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (*domain.Book, error) {
	query := `
		SELECT book_id, title, author, cover, inventory, daily_fee, created_at, last_updated_at
		FROM books
		WHERE book_id = $1
		FOR UPDATE;
	`
	modelBook, err := scanBook(tx.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock book %d: %w", bookID, err)
	}

	domainBook := mapping.ToDomainBook(*modelBook)
	return &domainBook, nil
}

// UpdateBookInventoryInTx sets a book's inventory within tx. The caller holds
// the row lock from FindBookByIDForUpdate.
func (r *PgxBookRepository) UpdateBookInventoryInTx(ctx context.Context, tx pgx.Tx, bookID int64, inventory int, now time.Time) error {
	query := `
		UPDATE books
		SET inventory = $2, last_updated_at = $3
		WHERE book_id = $1;
	`
	tag, err := tx.Exec(ctx, query, bookID, inventory, now)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update inventory of book %d", bookID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanBook scans one books row in select column order.
func scanBook(row pgx.Row) (*models.Book, error) {
	var m models.Book
	err := row.Scan(
		&m.BookID,
		&m.Title,
		&m.Author,
		&m.Cover,
		&m.Inventory,
		&m.DailyFee,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
