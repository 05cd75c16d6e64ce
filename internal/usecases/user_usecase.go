package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
	"bot-commander.backend/internal/domain/repositories"
	"bot-commander.backend/pkg/crypto"
	"bot-commander.backend/pkg/logger"
)

// UserUsecase handles admin user management
type UserUsecase struct {
	userRepo   repositories.UserRepository
	loginRepo  repositories.LoginRepository
	assignRepo repositories.BotAssignmentRepository
	behavRepo  repositories.BotBehaviourRepository
	uow        repositories.UnitOfWork
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	loginRepo repositories.LoginRepository,
	assignRepo repositories.BotAssignmentRepository,
	behavRepo repositories.BotBehaviourRepository,
	uow repositories.UnitOfWork,
) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		loginRepo:  loginRepo,
		assignRepo: assignRepo,
		behavRepo:  behavRepo,
		uow:        uow,
	}
}

// List returns all users
func (u *UserUsecase) List(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.List(ctx)
}

// Get returns one user by id
func (u *UserUsecase) Get(ctx context.Context, id uint) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// Create creates a User and its Login atomically
func (u *UserUsecase) Create(ctx context.Context, actor *entities.User, input *entities.CreateUserInput) (*entities.User, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.BadRequest("User with this email already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:     input.Email,
		Name:      input.Name,
		IsAdmin:   input.IsAdmin,
		CreatedOn: time.Now(),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return u.loginRepo.Create(txCtx, &entities.Login{
			UserID:    user.UserID,
			Password:  passwordHash,
			IsActive:  true,
			CreatedBy: null.UintFrom(actor.UserID),
			UpdatedBy: null.UintFrom(actor.UserID),
		})
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// lost a race on the email unique index
			return nil, domainerrors.BadRequest("User with this email already exists")
		}
		return nil, err
	}

	logger.Info(ctx, "user created", zap.Uint("user_id", user.UserID), zap.Uint("created_by", actor.UserID))
	return user, nil
}

// Update applies a partial update. An admin cannot strip their own
// admin flag, and an email change must not collide with another user.
func (u *UserUsecase) Update(ctx context.Context, actor *entities.User, targetID uint, input *entities.UpdateUserInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}

	if targetID == actor.UserID && input.IsAdmin != nil && !*input.IsAdmin {
		return nil, domainerrors.BadRequest("You cannot remove your own admin status")
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := u.userRepo.GetByEmail(ctx, *input.Email)
		if err == nil && existing.UserID != targetID {
			return nil, domainerrors.BadRequest("Email already in use")
		}
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user updated", zap.Uint("user_id", targetID), zap.Uint("updated_by", actor.UserID))
	return user, nil
}

// Delete hard-deletes a user, cascading through login, bot assignments
// and behaviour rows in one transaction. An admin cannot delete their
// own account.
func (u *UserUsecase) Delete(ctx context.Context, actor *entities.User, targetID uint) error {
	if targetID == actor.UserID {
		return domainerrors.BadRequest("You cannot delete your own account")
	}

	if _, err := u.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return err
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.behavRepo.DeleteByUserID(txCtx, targetID); err != nil {
			return err
		}
		if err := u.assignRepo.DeleteByUserID(txCtx, targetID); err != nil {
			return err
		}
		if err := u.loginRepo.DeleteByUserID(txCtx, targetID); err != nil {
			return err
		}
		return u.userRepo.Delete(txCtx, targetID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "user deleted", zap.Uint("user_id", targetID), zap.Uint("deleted_by", actor.UserID))
	return nil
}
