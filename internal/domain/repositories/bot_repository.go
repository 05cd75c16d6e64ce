package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"

	"bot-commander.backend/internal/domain/entities"
)

// BotAssignmentRepository defines bot assignment data operations. All
// read methods exclude soft-deleted rows.
type BotAssignmentRepository interface {
	Create(ctx context.Context, assignment *entities.BotAssignment) error
	GetActiveByID(ctx context.Context, assignID uint) (*entities.BotAssignment, error)
	ListActiveByUserID(ctx context.Context, userID uint) ([]*entities.BotAssignment, error)
	ActiveFingerprintExists(ctx context.Context, fingerprint string) (bool, error)
	UpdateValidity(ctx context.Context, assignID uint, validity null.Time, updatedBy uint) error
	UpdateAllowAdminControl(ctx context.Context, assignID uint, allow bool, updatedBy uint) error
	SoftDelete(ctx context.Context, assignID uint, updatedBy uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

// BotBehaviourRepository defines behaviour-flag data operations
type BotBehaviourRepository interface {
	Create(ctx context.Context, behaviour *entities.BotBehaviour) error
	GetActiveByAssignID(ctx context.Context, assignID uint) (*entities.BotBehaviour, error)
	Update(ctx context.Context, behaviour *entities.BotBehaviour) error
	DeleteByUserID(ctx context.Context, userID uint) error
}
