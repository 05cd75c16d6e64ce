package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
	"bot-commander.backend/internal/usecases"
	"bot-commander.backend/pkg/crypto"
)

func TestAuthUsecase_Login_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockLoginRepo := new(MockLoginRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, mockLoginRepo)

	ctx := context.Background()
	hash, err := crypto.HashPassword("correct-horse")
	require.NoError(t, err)

	user := &entities.User{UserID: 7, Email: "trader@bots.io", Name: "Trader"}
	mockUserRepo.On("GetByEmail", ctx, "trader@bots.io").Return(user, nil)
	mockLoginRepo.On("GetActiveByUserID", ctx, uint(7)).Return(&entities.Login{
		UserID:   7,
		Password: hash,
		IsActive: true,
	}, nil)

	got, err := uc.Login(ctx, &entities.LoginInput{Email: "trader@bots.io", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	mockUserRepo.AssertExpectations(t)
	mockLoginRepo.AssertExpectations(t)
}

func TestAuthUsecase_Login_UnknownUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockLoginRepo := new(MockLoginRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, mockLoginRepo)

	ctx := context.Background()
	mockUserRepo.On("GetByEmail", ctx, "ghost@bots.io").Return(nil, domainerrors.ErrNotFound)

	_, err := uc.Login(ctx, &entities.LoginInput{Email: "ghost@bots.io", Password: "whatever"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAuthUsecase_Login_NoActiveCredentials(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockLoginRepo := new(MockLoginRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, mockLoginRepo)

	ctx := context.Background()
	user := &entities.User{UserID: 7, Email: "trader@bots.io"}
	mockUserRepo.On("GetByEmail", ctx, "trader@bots.io").Return(user, nil)
	mockLoginRepo.On("GetActiveByUserID", ctx, uint(7)).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.Login(ctx, &entities.LoginInput{Email: "trader@bots.io", Password: "whatever"})
	require.ErrorIs(t, err, domainerrors.ErrNoCredentials)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockLoginRepo := new(MockLoginRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, mockLoginRepo)

	ctx := context.Background()
	hash, err := crypto.HashPassword("correct-horse")
	require.NoError(t, err)

	user := &entities.User{UserID: 7, Email: "trader@bots.io"}
	mockUserRepo.On("GetByEmail", ctx, "trader@bots.io").Return(user, nil)
	mockLoginRepo.On("GetActiveByUserID", ctx, uint(7)).Return(&entities.Login{
		UserID:   7,
		Password: hash,
		IsActive: true,
	}, nil)

	_, err = uc.Login(ctx, &entities.LoginInput{Email: "trader@bots.io", Password: "wrong-horse"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_RepoErrorPassesThrough(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockLoginRepo := new(MockLoginRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, mockLoginRepo)

	ctx := context.Background()
	boom := errors.New("connection refused")
	mockUserRepo.On("GetByEmail", ctx, "trader@bots.io").Return(nil, boom)

	_, err := uc.Login(ctx, &entities.LoginInput{Email: "trader@bots.io", Password: "whatever"})
	require.ErrorIs(t, err, boom)
}

func TestAuthUsecase_GetUserByID(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockLoginRepo := new(MockLoginRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, mockLoginRepo)

	ctx := context.Background()
	mockUserRepo.On("GetByID", ctx, uint(7)).Return(&entities.User{UserID: 7}, nil)
	mockUserRepo.On("GetByID", ctx, uint(99)).Return(nil, domainerrors.ErrNotFound)

	got, err := uc.GetUserByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)

	_, err = uc.GetUserByID(ctx, 99)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
