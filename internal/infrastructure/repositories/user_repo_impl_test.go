package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
)

func TestUserRepository_CRUDAndList(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{
		Email:     "alice@bots.io",
		Name:      "Alice",
		IsAdmin:   true,
		CreatedOn: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.UserID)

	byID, err := repo.GetByID(ctx, u.UserID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.True(t, byID.IsAdmin)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.UserID, byEmail.UserID)

	u.Name = "Alice Updated"
	u.IsAdmin = false
	require.NoError(t, repo.Update(ctx, u))
	updated, err := repo.GetByID(ctx, u.UserID)
	require.NoError(t, err)
	require.Equal(t, "Alice Updated", updated.Name)
	require.False(t, updated.IsAdmin)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, repo.Delete(ctx, u.UserID))
	_, err = repo.GetByID(ctx, u.UserID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_AdminExists(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	exists, err := repo.AdminExists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repo.Create(ctx, &entities.User{Email: "u@bots.io", Name: "U", CreatedOn: time.Now()}))
	exists, err = repo.AdminExists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repo.Create(ctx, &entities.User{Email: "a@bots.io", Name: "A", IsAdmin: true, CreatedOn: time.Now()}))
	exists, err = repo.AdminExists(ctx)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.User{Email: "dup@bots.io", Name: "One", CreatedOn: time.Now()}))
	err := repo.Create(ctx, &entities.User{Email: "dup@bots.io", Name: "Two", CreatedOn: time.Now()})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 99)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@bots.io")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.User{UserID: 99, Email: "x@bots.io", Name: "x"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Delete(ctx, 99)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLoginRepository_CreateGetDelete(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewLoginRepository(db)
	ctx := context.Background()

	login := &entities.Login{
		UserID:    7,
		Password:  "$2a$12$digest",
		IsActive:  true,
		CreatedBy: null.UintFrom(1),
		UpdatedBy: null.UintFrom(1),
	}
	require.NoError(t, repo.Create(ctx, login))
	require.NotZero(t, login.LoginID)

	got, err := repo.GetActiveByUserID(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "$2a$12$digest", got.Password)
	require.Equal(t, uint(1), got.CreatedBy.Uint)

	require.NoError(t, repo.DeleteByUserID(ctx, 7))
	_, err = repo.GetActiveByUserID(ctx, 7)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLoginRepository_InactiveLoginIsNotFound(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewLoginRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Login{UserID: 3, Password: "digest", IsActive: false}))
	_, err := repo.GetActiveByUserID(ctx, 3)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
