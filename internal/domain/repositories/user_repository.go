package repositories

import (
	"context"

	"bot-commander.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// Delete removes the user row itself. Cascading to logins and bot
	// assignments is orchestrated by the usecase inside a unit of work.
	Delete(ctx context.Context, id uint) error
	AdminExists(ctx context.Context) (bool, error)
}

// LoginRepository defines credential data operations
type LoginRepository interface {
	Create(ctx context.Context, login *entities.Login) error
	GetActiveByUserID(ctx context.Context, userID uint) (*entities.Login, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}
