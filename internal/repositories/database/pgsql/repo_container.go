package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	bookRepo := newPgxBookRepository(dbPool)
	borrowingRepo := newPgxBorrowingRepository(dbPool, bookRepo)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BookRepo:      bookRepo,
		BorrowingRepo: borrowingRepo,
		UserRepo:      userRepo,
	}
}
