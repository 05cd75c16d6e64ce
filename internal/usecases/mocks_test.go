package usecases_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"

	"bot-commander.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) AdminExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// Mock LoginRepository
type MockLoginRepository struct {
	mock.Mock
}

func (m *MockLoginRepository) Create(ctx context.Context, login *entities.Login) error {
	return m.Called(ctx, login).Error(0)
}

func (m *MockLoginRepository) GetActiveByUserID(ctx context.Context, userID uint) (*entities.Login, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Login), args.Error(1)
}

func (m *MockLoginRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock BotAssignmentRepository
type MockBotAssignmentRepository struct {
	mock.Mock
}

func (m *MockBotAssignmentRepository) Create(ctx context.Context, assignment *entities.BotAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}

func (m *MockBotAssignmentRepository) GetActiveByID(ctx context.Context, assignID uint) (*entities.BotAssignment, error) {
	args := m.Called(ctx, assignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BotAssignment), args.Error(1)
}

func (m *MockBotAssignmentRepository) ListActiveByUserID(ctx context.Context, userID uint) ([]*entities.BotAssignment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BotAssignment), args.Error(1)
}

func (m *MockBotAssignmentRepository) ActiveFingerprintExists(ctx context.Context, fingerprint string) (bool, error) {
	args := m.Called(ctx, fingerprint)
	return args.Bool(0), args.Error(1)
}

func (m *MockBotAssignmentRepository) UpdateValidity(ctx context.Context, assignID uint, validity null.Time, updatedBy uint) error {
	return m.Called(ctx, assignID, validity, updatedBy).Error(0)
}

func (m *MockBotAssignmentRepository) UpdateAllowAdminControl(ctx context.Context, assignID uint, allow bool, updatedBy uint) error {
	return m.Called(ctx, assignID, allow, updatedBy).Error(0)
}

func (m *MockBotAssignmentRepository) SoftDelete(ctx context.Context, assignID uint, updatedBy uint) error {
	return m.Called(ctx, assignID, updatedBy).Error(0)
}

func (m *MockBotAssignmentRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock BotBehaviourRepository
type MockBotBehaviourRepository struct {
	mock.Mock
}

func (m *MockBotBehaviourRepository) Create(ctx context.Context, behaviour *entities.BotBehaviour) error {
	return m.Called(ctx, behaviour).Error(0)
}

func (m *MockBotBehaviourRepository) GetActiveByAssignID(ctx context.Context, assignID uint) (*entities.BotBehaviour, error) {
	args := m.Called(ctx, assignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BotBehaviour), args.Error(1)
}

func (m *MockBotBehaviourRepository) Update(ctx context.Context, behaviour *entities.BotBehaviour) error {
	return m.Called(ctx, behaviour).Error(0)
}

func (m *MockBotBehaviourRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock BotNotifier
type MockBotNotifier struct {
	mock.Mock
}

func (m *MockBotNotifier) NotifyFlagChange(ctx context.Context, botID string, action string, value bool) error {
	return m.Called(ctx, botID, action, value).Error(0)
}
