package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pageturn/library_backend/internal/apperrors"
	"github.com/pageturn/library_backend/internal/core/domain"
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	"github.com/pageturn/library_backend/internal/models"
	"github.com/pageturn/library_backend/internal/utils/mapping"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	modelUser := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (username, name, password_hash, is_admin, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id;
	`
	err := r.db.QueryRow(ctx, query,
		modelUser.Username,
		modelUser.Name,
		modelUser.PasswordHash,
		modelUser.IsAdmin,
		modelUser.CreatedAt,
		modelUser.LastUpdatedAt,
	).Scan(&user.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		SELECT user_id, username, name, password_hash, is_admin, created_at, last_updated_at
		FROM users
		WHERE user_id = $1;
	`
	return r.findOne(ctx, query, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT user_id, username, name, password_hash, is_admin, created_at, last_updated_at
		FROM users
		WHERE username = $1;
	`
	return r.findOne(ctx, query, username)
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var modelUser models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&modelUser.UserID,
		&modelUser.Username,
		&modelUser.Name,
		&modelUser.PasswordHash,
		&modelUser.IsAdmin,
		&modelUser.CreatedAt,
		&modelUser.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}
