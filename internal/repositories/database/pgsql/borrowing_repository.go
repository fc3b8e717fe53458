package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pageturn/library_backend/internal/apperrors"
	"github.com/pageturn/library_backend/internal/core/domain"
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	"github.com/pageturn/library_backend/internal/models"
	"github.com/pageturn/library_backend/internal/utils/mapping"
)

type PgxBorrowingRepository struct {
	BaseRepository
	bookRepo portsrepo.BookRepositoryFacade
}

// newPgxBorrowingRepository creates a new repository for borrowing data.
func newPgxBorrowingRepository(pool *pgxpool.Pool, bookRepo portsrepo.BookRepositoryFacade) portsrepo.BorrowingRepositoryFacade {
	return &PgxBorrowingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bookRepo:       bookRepo,
	}
}

// Ensure PgxBorrowingRepository implements portsrepo.BorrowingRepositoryFacade
var _ portsrepo.BorrowingRepositoryFacade = (*PgxBorrowingRepository)(nil)

// SaveBorrowing inserts a borrowing and decrements the book's inventory within
// a single DB transaction. The book row is locked first, so the availability
// check and the decrement are atomic: concurrent creations can never push
// inventory below zero.
func (r *PgxBorrowingRepository) SaveBorrowing(ctx context.Context, borrowing domain.Borrowing) (*domain.Borrowing, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	book, err := r.bookRepo.FindBookByIDForUpdate(ctx, tx, borrowing.BookID)
	if err != nil {
		return nil, err
	}
	if book.Inventory < 1 {
		return nil, apperrors.ErrBookUnavailable
	}

	now := time.Now().UTC()
	if err := r.bookRepo.UpdateBookInventoryInTx(ctx, tx, book.BookID, book.Inventory-1, now); err != nil {
		return nil, err
	}

	modelBorrowing := mapping.ToModelBorrowing(borrowing)
	query := `
		INSERT INTO borrowings (borrow_date, expected_return_date, actual_return_date, book_id, user_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING borrowing_id;
	`
	err = tx.QueryRow(ctx, query,
		modelBorrowing.BorrowDate,
		modelBorrowing.ExpectedReturnDate,
		modelBorrowing.ActualReturnDate,
		modelBorrowing.BookID,
		modelBorrowing.UserID,
		now,
		now,
	).Scan(&borrowing.BorrowingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert borrowing", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// MarkBorrowingReturned performs the RETURNED transition and increments the
// book's inventory within a single DB transaction. The borrowing row lock
// makes the already-returned check race free: a second concurrent return sees
// the committed actual_return_date and fails without touching inventory.
func (r *PgxBorrowingRepository) MarkBorrowingReturned(ctx context.Context, borrowingID int64, returnDate time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var bookID int64
	var actualReturnDate *time.Time
	err = tx.QueryRow(ctx, `
		SELECT book_id, actual_return_date
		FROM borrowings
		WHERE borrowing_id = $1
		FOR UPDATE;
	`, borrowingID).Scan(&bookID, &actualReturnDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock borrowing %d: %w", borrowingID, err)
	}
	if actualReturnDate != nil {
		return apperrors.ErrAlreadyReturned
	}

	book, err := r.bookRepo.FindBookByIDForUpdate(ctx, tx, bookID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := r.bookRepo.UpdateBookInventoryInTx(ctx, tx, bookID, book.Inventory+1, now); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE borrowings
		SET actual_return_date = $2, last_updated_at = $3
		WHERE borrowing_id = $1;
	`, borrowingID, returnDate, now)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to mark borrowing %d returned", borrowingID), err)
	}

	return r.Commit(ctx, tx)
}

const borrowingSelectColumns = `
	b.borrowing_id, b.borrow_date, b.expected_return_date, b.actual_return_date, b.book_id, b.user_id,
	k.book_id, k.title, k.author, k.cover, k.inventory, k.daily_fee, k.created_at, k.last_updated_at`

func (r *PgxBorrowingRepository) FindBorrowingByID(ctx context.Context, borrowingID int64) (*domain.Borrowing, error) {
	query := `
		SELECT` + borrowingSelectColumns + `
		FROM borrowings b
		JOIN books k ON k.book_id = b.book_id
		WHERE b.borrowing_id = $1;
	`
	borrowing, err := scanBorrowingWithBook(r.Pool.QueryRow(ctx, query, borrowingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find borrowing %d: %w", borrowingID, err)
	}
	return borrowing, nil
}

// ListBorrowings returns borrowings matching the filter, joined with their
// books. DISTINCT plus the fixed borrowing_id ordering keeps results
// deduplicated and stable across calls.
func (r *PgxBorrowingRepository) ListBorrowings(ctx context.Context, filter portsrepo.ListBorrowingsFilter) ([]domain.Borrowing, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var conditions []string
	var args []any

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, "b.user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.IsActive != nil {
		if *filter.IsActive {
			conditions = append(conditions, "b.actual_return_date IS NULL")
		} else {
			conditions = append(conditions, "b.actual_return_date IS NOT NULL")
		}
	}

	query := `
		SELECT DISTINCT` + borrowingSelectColumns + `
		FROM borrowings b
		JOIN books k ON k.book_id = b.book_id`
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf("\n\t\tORDER BY b.borrowing_id\n\t\tLIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowings: %w", err)
	}
	defer rows.Close()

	var borrowings []domain.Borrowing
	for rows.Next() {
		borrowing, err := scanBorrowingWithBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrowing row: %w", err)
		}
		borrowings = append(borrowings, *borrowing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating borrowing rows: %w", err)
	}

	return borrowings, nil
}

// scanBorrowingWithBook scans one joined borrowings+books row.
func scanBorrowingWithBook(row pgx.Row) (*domain.Borrowing, error) {
	var mb models.Borrowing
	var mk models.Book
	err := row.Scan(
		&mb.BorrowingID,
		&mb.BorrowDate,
		&mb.ExpectedReturnDate,
		&mb.ActualReturnDate,
		&mb.BookID,
		&mb.UserID,
		&mk.BookID,
		&mk.Title,
		&mk.Author,
		&mk.Cover,
		&mk.Inventory,
		&mk.DailyFee,
		&mk.CreatedAt,
		&mk.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	borrowing := mapping.ToDomainBorrowing(mb)
	book := mapping.ToDomainBook(mk)
	borrowing.Book = &book
	return &borrowing, nil
}
