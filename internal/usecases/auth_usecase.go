package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
	"bot-commander.backend/internal/domain/repositories"
	"bot-commander.backend/internal/metrics"
	"bot-commander.backend/pkg/crypto"
	"bot-commander.backend/pkg/logger"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo  repositories.UserRepository
	loginRepo repositories.LoginRepository
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, loginRepo repositories.LoginRepository) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  userRepo,
		loginRepo: loginRepo,
	}
}

// Login validates credentials and returns the authenticated user. The
// three failure kinds (unknown user, missing/inactive login, wrong
// password) stay distinct here for logging and metrics; the handler
// collapses them into one generic response so callers cannot probe
// which step failed.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
			logger.Warn(ctx, "login failed: unknown user", zap.String("email", input.Email))
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	login, err := u.loginRepo.GetActiveByUserID(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("no_credentials").Inc()
			logger.Warn(ctx, "login failed: no active credentials", zap.Uint("user_id", user.UserID))
			return nil, domainerrors.ErrNoCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, login.Password) {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_password").Inc()
		logger.Warn(ctx, "login failed: password mismatch", zap.Uint("user_id", user.UserID))
		return nil, domainerrors.ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.Info(ctx, "user logged in", zap.Uint("user_id", user.UserID))
	return user, nil
}

// GetUserByID resolves a session's user id to its User row. Returns
// ErrNotFound when the user no longer exists.
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
