package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pageturn/library_backend/internal/apperrors"
	"github.com/pageturn/library_backend/internal/core/domain"
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
	"github.com/pageturn/library_backend/internal/dto"
	"github.com/pageturn/library_backend/internal/middleware"
	"github.com/pageturn/library_backend/internal/utils"
)

// userService provides registration and authentication operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s is already taken", apperrors.ErrDuplicate, req.Username)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	created, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		logger.Error("Failed to save user", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.Int64("user_id", created.UserID))
	return created, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// AuthenticateUser verifies credentials. Callers treat any error as invalid
// credentials; the distinction between unknown user and bad password must not
// be observable.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}
	return user, nil
}
