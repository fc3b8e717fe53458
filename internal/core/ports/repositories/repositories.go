package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BookRepo      BookRepositoryFacade
	BorrowingRepo BorrowingRepositoryFacade
	UserRepo      UserRepositoryFacade
}

// TransactionManager defines the database transaction lifecycle operations
// exposed by repositories that orchestrate multi-statement units of work.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
