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

// BotAssignmentRepository implements bot assignment data operations
type BotAssignmentRepository struct {
	db *gorm.DB
}

// NewBotAssignmentRepository creates a new bot assignment repository
func NewBotAssignmentRepository(db *gorm.DB) *BotAssignmentRepository {
	return &BotAssignmentRepository{db: db}
}

// Create inserts a new assignment and backfills the generated id
func (r *BotAssignmentRepository) Create(ctx context.Context, assignment *entities.BotAssignment) error {
	now := time.Now()
	m := &models.UserBot{
		UserID:            assignment.UserID,
		BotID:             assignment.BotIDCipher,
		BotFingerprint:    assignment.BotFingerprint,
		AllowAdminControl: assignment.AllowAdminControl,
		Validity:          assignment.Validity.Ptr(),
		IsActive:          true,
		CreatedOn:         now,
		CreatedBy:         assignment.CreatedBy.Ptr(),
		UpdatedOn:         now,
		UpdatedBy:         assignment.UpdatedBy.Ptr(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if IsUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	assignment.AssignID = m.AssignID
	assignment.IsActive = m.IsActive
	assignment.CreatedOn = m.CreatedOn
	assignment.UpdatedOn = m.UpdatedOn
	return nil
}

// GetActiveByID gets an active assignment by id
func (r *BotAssignmentRepository) GetActiveByID(ctx context.Context, assignID uint) (*entities.BotAssignment, error) {
	var m models.UserBot
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("assign_id = ? AND is_active = ?", assignID, true).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return assignmentToEntity(&m), nil
}

// ListActiveByUserID lists a user's active assignments
func (r *BotAssignmentRepository) ListActiveByUserID(ctx context.Context, userID uint) ([]*entities.BotAssignment, error) {
	var rows []models.UserBot
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_on ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	assignments := make([]*entities.BotAssignment, 0, len(rows))
	for i := range rows {
		assignments = append(assignments, assignmentToEntity(&rows[i]))
	}
	return assignments, nil
}

// ActiveFingerprintExists reports whether an active assignment already
// holds the given bot fingerprint. This is the pre-insert duplicate
// check; the unique column constraint remains the authority under races.
func (r *BotAssignmentRepository) ActiveFingerprintExists(ctx context.Context, fingerprint string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserBot{}).
		Where("bot_fingerprint = ? AND is_active = ?", fingerprint, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateValidity sets or clears the assignment expiry
func (r *BotAssignmentRepository) UpdateValidity(ctx context.Context, assignID uint, validity null.Time, updatedBy uint) error {
	updates := map[string]interface{}{
		"validity":   validity.Ptr(),
		"updated_on": time.Now(),
		"updated_by": updatedBy,
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserBot{}).
		Where("assign_id = ? AND is_active = ?", assignID, true).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateAllowAdminControl flips the owner's admin-control grant
func (r *BotAssignmentRepository) UpdateAllowAdminControl(ctx context.Context, assignID uint, allow bool, updatedBy uint) error {
	updates := map[string]interface{}{
		"allow_admin_control": allow,
		"updated_on":          time.Now(),
		"updated_by":          updatedBy,
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserBot{}).
		Where("assign_id = ? AND is_active = ?", assignID, true).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete marks an assignment inactive, recording the actor
func (r *BotAssignmentRepository) SoftDelete(ctx context.Context, assignID uint, updatedBy uint) error {
	updates := map[string]interface{}{
		"is_active":  false,
		"updated_on": time.Now(),
		"updated_by": updatedBy,
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserBot{}).
		Where("assign_id = ? AND is_active = ?", assignID, true).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUserID hard-deletes all of a user's assignment rows,
// soft-deleted ones included. Used by the user-delete cascade.
func (r *BotAssignmentRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.UserBot{}, "user_id = ?", userID).Error
}

func assignmentToEntity(m *models.UserBot) *entities.BotAssignment {
	return &entities.BotAssignment{
		AssignID:          m.AssignID,
		UserID:            m.UserID,
		BotIDCipher:       m.BotID,
		BotFingerprint:    m.BotFingerprint,
		AllowAdminControl: m.AllowAdminControl,
		Validity:          null.TimeFromPtr(m.Validity),
		IsActive:          m.IsActive,
		CreatedOn:         m.CreatedOn,
		CreatedBy:         null.UintFromPtr(m.CreatedBy),
		UpdatedOn:         m.UpdatedOn,
		UpdatedBy:         null.UintFromPtr(m.UpdatedBy),
	}
}

// BotBehaviourRepository implements behaviour-flag data operations
type BotBehaviourRepository struct {
	db *gorm.DB
}

// NewBotBehaviourRepository creates a new behaviour repository
func NewBotBehaviourRepository(db *gorm.DB) *BotBehaviourRepository {
	return &BotBehaviourRepository{db: db}
}

// Create inserts a behaviour row with all flags defaulted to false
func (r *BotBehaviourRepository) Create(ctx context.Context, behaviour *entities.BotBehaviour) error {
	now := time.Now()
	m := &models.BotBehaviour{
		AssignID:                behaviour.AssignID,
		BotState:                behaviour.BotState,
		HardStopAllTrades:       behaviour.HardStopAllTrades,
		ListenToCommonCommander: behaviour.ListenToCommonCommander,
		NewsBasedStartStop:      behaviour.NewsBasedStartStop,
		RefreshDataFromBot:      behaviour.RefreshDataFromBot,
		IsActive:                true,
		CreatedOn:               now,
		CreatedBy:               behaviour.CreatedBy.Ptr(),
		UpdatedOn:               now,
		UpdatedBy:               behaviour.UpdatedBy.Ptr(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	behaviour.BotBehavID = m.BotBehavID
	behaviour.IsActive = m.IsActive
	behaviour.CreatedOn = m.CreatedOn
	behaviour.UpdatedOn = m.UpdatedOn
	return nil
}

// GetActiveByAssignID gets the active behaviour row for an assignment
func (r *BotBehaviourRepository) GetActiveByAssignID(ctx context.Context, assignID uint) (*entities.BotBehaviour, error) {
	var m models.BotBehaviour
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("assign_id = ? AND is_active = ?", assignID, true).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return behaviourToEntity(&m), nil
}

// Update persists the five behaviour flags and the acting user
func (r *BotBehaviourRepository) Update(ctx context.Context, behaviour *entities.BotBehaviour) error {
	updates := map[string]interface{}{
		"bot_state":                  behaviour.BotState,
		"hard_stop_all_trades":       behaviour.HardStopAllTrades,
		"listen_to_common_commander": behaviour.ListenToCommonCommander,
		"news_based_start_stop":      behaviour.NewsBasedStartStop,
		"refresh_data_from_bot":      behaviour.RefreshDataFromBot,
		"updated_on":                 time.Now(),
		"updated_by":                 behaviour.UpdatedBy.Ptr(),
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.BotBehaviour{}).
		Where("bot_behav_id = ?", behaviour.BotBehavID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUserID hard-deletes behaviour rows belonging to a user's
// assignments. Used by the user-delete cascade.
func (r *BotBehaviourRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	sub := GetDB(ctx, r.db).WithContext(ctx).Model(&models.UserBot{}).Select("assign_id").Where("user_id = ?", userID)
	return GetDB(ctx, r.db).WithContext(ctx).Where("assign_id IN (?)", sub).Delete(&models.BotBehaviour{}).Error
}

func behaviourToEntity(m *models.BotBehaviour) *entities.BotBehaviour {
	return &entities.BotBehaviour{
		BotBehavID:              m.BotBehavID,
		AssignID:                m.AssignID,
		BotState:                m.BotState,
		HardStopAllTrades:       m.HardStopAllTrades,
		ListenToCommonCommander: m.ListenToCommonCommander,
		NewsBasedStartStop:      m.NewsBasedStartStop,
		RefreshDataFromBot:      m.RefreshDataFromBot,
		IsActive:                m.IsActive,
		CreatedOn:               m.CreatedOn,
		CreatedBy:               null.UintFromPtr(m.CreatedBy),
		UpdatedOn:               m.UpdatedOn,
		UpdatedBy:               null.UintFromPtr(m.UpdatedBy),
	}
}
