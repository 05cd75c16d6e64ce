package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
	"bot-commander.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user and backfills the generated id
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		CreatedOn: user.CreatedOn,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if IsUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.UserID = m.UserID
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// List lists all users
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var userModels []models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_on ASC").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// Update updates a user's mutable fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"email":    user.Email,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
	}
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("user_id = ?", user.UserID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete hard-deletes the user row
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "user_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AdminExists reports whether at least one admin user exists
func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		IsAdmin:   m.IsAdmin,
		CreatedOn: m.CreatedOn,
	}
}

// LoginRepository implements credential data operations
type LoginRepository struct {
	db *gorm.DB
}

// NewLoginRepository creates a new login repository
func NewLoginRepository(db *gorm.DB) *LoginRepository {
	return &LoginRepository{db: db}
}

// Create creates a new login row
func (r *LoginRepository) Create(ctx context.Context, login *entities.Login) error {
	now := time.Now()
	m := &models.Login{
		UserID:    login.UserID,
		Password:  login.Password,
		IsActive:  login.IsActive,
		CreatedOn: now,
		CreatedBy: login.CreatedBy.Ptr(),
		UpdatedOn: now,
		UpdatedBy: login.UpdatedBy.Ptr(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	login.LoginID = m.LoginID
	login.CreatedOn = m.CreatedOn
	login.UpdatedOn = m.UpdatedOn
	return nil
}

// GetActiveByUserID gets the active login for a user
func (r *LoginRepository) GetActiveByUserID(ctx context.Context, userID uint) (*entities.Login, error) {
	var m models.Login
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Login{
		LoginID:   m.LoginID,
		UserID:    m.UserID,
		Password:  m.Password,
		IsActive:  m.IsActive,
		CreatedOn: m.CreatedOn,
		CreatedBy: null.UintFromPtr(m.CreatedBy),
		UpdatedOn: m.UpdatedOn,
		UpdatedBy: null.UintFromPtr(m.UpdatedBy),
	}, nil
}

// DeleteByUserID hard-deletes a user's login rows
func (r *LoginRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Login{}, "user_id = ?", userID).Error
}
