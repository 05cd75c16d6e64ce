package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
	"bot-commander.backend/internal/domain/repositories"
	"bot-commander.backend/internal/metrics"
	"bot-commander.backend/pkg/crypto"
	"bot-commander.backend/pkg/logger"
)

// validityLayouts are the accepted shapes for the validity value, tried
// in order after a trailing "Z" is stripped.
var validityLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// BotUsecase handles bot assignment and control operations
type BotUsecase struct {
	assignRepo repositories.BotAssignmentRepository
	behavRepo  repositories.BotBehaviourRepository
	userRepo   repositories.UserRepository
	uow        repositories.UnitOfWork
	cipher     *crypto.FieldCipher
	notifier   BotNotifier
}

// NewBotUsecase creates a new bot usecase
func NewBotUsecase(
	assignRepo repositories.BotAssignmentRepository,
	behavRepo repositories.BotBehaviourRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	cipher *crypto.FieldCipher,
	notifier BotNotifier,
) *BotUsecase {
	return &BotUsecase{
		assignRepo: assignRepo,
		behavRepo:  behavRepo,
		userRepo:   userRepo,
		uow:        uow,
		cipher:     cipher,
		notifier:   notifier,
	}
}

// decryptBotID fills the plaintext bot id on an assignment. A failed
// decryption leaves a sentinel in place and bumps the failure counter;
// the row is still served.
func (u *BotUsecase) decryptBotID(ctx context.Context, a *entities.BotAssignment) {
	a.BotID = u.cipher.Decrypt(a.BotIDCipher)
	if crypto.IsDecryptSentinel(a.BotID) {
		metrics.DecryptFailuresTotal.Inc()
		logger.Warn(ctx, "bot id decryption failed", zap.Uint("assign_id", a.AssignID))
	}
}

// List returns the actor's active assignments. An admin may pass
// forUserID to list another user's bots; non-admins may only list
// their own.
func (u *BotUsecase) List(ctx context.Context, actor *entities.User, forUserID *uint) ([]*entities.BotAssignment, error) {
	userID := actor.UserID
	if forUserID != nil && *forUserID != actor.UserID {
		if !actor.IsAdmin {
			return nil, domainerrors.Forbidden("access denied")
		}
		userID = *forUserID
	}

	assignments, err := u.assignRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		u.decryptBotID(ctx, a)
	}
	return assignments, nil
}

// Get returns the full detail view of one assignment, materializing the
// behaviour row on first access.
func (u *BotUsecase) Get(ctx context.Context, actor *entities.User, assignID uint) (*entities.BotDetail, error) {
	assignment, err := u.assignRepo.GetActiveByID(ctx, assignID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Bot assignment not found")
		}
		return nil, err
	}

	if d := CanViewBot(actor, assignment); !d.Allowed {
		return nil, domainerrors.Forbidden(d.Reason)
	}

	behaviour, err := u.getOrCreateBehaviour(ctx, assignment.AssignID, actor.UserID)
	if err != nil {
		return nil, err
	}

	u.decryptBotID(ctx, assignment)
	return &entities.BotDetail{
		BotAssignment:   *assignment,
		CanAdminControl: CanAdminControl(actor, assignment),
		Behaviour:       behaviour,
	}, nil
}

// Assign binds a bot id to a user. The id is encrypted for storage and
// a deterministic fingerprint enforces that no two active assignments
// hold the same bot.
func (u *BotUsecase) Assign(ctx context.Context, actor *entities.User, input *entities.AssignBotInput) (*entities.BotAssignment, error) {
	if _, err := u.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}

	fingerprint := u.cipher.Fingerprint(input.BotID)
	exists, err := u.assignRepo.ActiveFingerprintExists(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.BotAssignmentsTotal.WithLabelValues("conflict").Inc()
		return nil, domainerrors.Conflict("This bot is already assigned")
	}

	cipherText, err := u.cipher.Encrypt(input.BotID)
	if err != nil {
		return nil, err
	}

	assignment := &entities.BotAssignment{
		UserID:         input.UserID,
		BotIDCipher:    cipherText,
		BotFingerprint: fingerprint,
		CreatedBy:      null.UintFrom(actor.UserID),
		UpdatedBy:      null.UintFrom(actor.UserID),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.assignRepo.Create(txCtx, assignment); err != nil {
			return err
		}
		return u.behavRepo.Create(txCtx, &entities.BotBehaviour{
			AssignID:  assignment.AssignID,
			CreatedBy: null.UintFrom(actor.UserID),
			UpdatedBy: null.UintFrom(actor.UserID),
		})
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// lost a race against a concurrent assignment of the same bot
			metrics.BotAssignmentsTotal.WithLabelValues("conflict").Inc()
			return nil, domainerrors.Conflict("This bot is already assigned")
		}
		return nil, err
	}

	metrics.BotAssignmentsTotal.WithLabelValues("assigned").Inc()
	logger.Info(ctx, "bot assigned",
		zap.Uint("assign_id", assignment.AssignID),
		zap.Uint("user_id", input.UserID),
		zap.Uint("assigned_by", actor.UserID))

	assignment.BotID = input.BotID
	return assignment, nil
}

// SetValidity sets or clears an assignment's expiry. An empty value
// clears it. The raw value may carry a trailing "Z", which is dropped
// before parsing.
func (u *BotUsecase) SetValidity(ctx context.Context, actor *entities.User, assignID uint, raw string) (*entities.BotAssignment, error) {
	assignment, err := u.assignRepo.GetActiveByID(ctx, assignID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Bot assignment not found")
		}
		return nil, err
	}

	if d := CanControlBot(actor, assignment, ActionValidity); !d.Allowed {
		metrics.ControlActionsTotal.WithLabelValues(string(ActionValidity), "denied").Inc()
		return nil, domainerrors.Forbidden(d.Reason)
	}

	var validity null.Time
	if raw != "" {
		parsed, err := parseValidity(raw)
		if err != nil {
			return nil, domainerrors.BadRequest("Invalid validity format. Use ISO format (YYYY-MM-DDTHH:MM:SS)")
		}
		validity = null.TimeFrom(parsed)
	}

	if err := u.assignRepo.UpdateValidity(ctx, assignID, validity, actor.UserID); err != nil {
		return nil, err
	}

	metrics.ControlActionsTotal.WithLabelValues(string(ActionValidity), "allowed").Inc()
	logger.Info(ctx, "bot validity updated",
		zap.Uint("assign_id", assignID),
		zap.Uint("updated_by", actor.UserID),
		zap.Bool("cleared", !validity.Valid))

	assignment.Validity = validity
	u.decryptBotID(ctx, assignment)
	return assignment, nil
}

// SetAdminControlGrant flips the owner's permission for admins to
// operate the bot's behaviour flags.
func (u *BotUsecase) SetAdminControlGrant(ctx context.Context, actor *entities.User, assignID uint, allow bool) (*entities.BotAssignment, error) {
	assignment, err := u.assignRepo.GetActiveByID(ctx, assignID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Bot assignment not found")
		}
		return nil, err
	}

	if d := CanControlBot(actor, assignment, ActionAllowAdminControl); !d.Allowed {
		metrics.ControlActionsTotal.WithLabelValues(string(ActionAllowAdminControl), "denied").Inc()
		return nil, domainerrors.Forbidden(d.Reason)
	}

	if err := u.assignRepo.UpdateAllowAdminControl(ctx, assignID, allow, actor.UserID); err != nil {
		return nil, err
	}

	metrics.ControlActionsTotal.WithLabelValues(string(ActionAllowAdminControl), "allowed").Inc()
	logger.Info(ctx, "bot admin control grant updated",
		zap.Uint("assign_id", assignID),
		zap.Bool("allow", allow),
		zap.Uint("updated_by", actor.UserID))

	assignment.AllowAdminControl = allow
	u.decryptBotID(ctx, assignment)
	return assignment, nil
}

// SetBehaviourFlag toggles one of the five behaviour flags and notifies
// the bot. Notification failures are logged, not surfaced; the stored
// state is the source of truth.
func (u *BotUsecase) SetBehaviourFlag(ctx context.Context, actor *entities.User, assignID uint, action ControlAction, value bool) (*entities.ControlResult, error) {
	if !IsBehaviourFlag(action) {
		return nil, domainerrors.BadRequest("Invalid action. Valid actions: " + ValidActionNames())
	}

	assignment, err := u.assignRepo.GetActiveByID(ctx, assignID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Bot assignment not found")
		}
		return nil, err
	}

	if d := CanControlBot(actor, assignment, action); !d.Allowed {
		metrics.ControlActionsTotal.WithLabelValues(string(action), "denied").Inc()
		return nil, domainerrors.Forbidden(d.Reason)
	}

	behaviour, err := u.getOrCreateBehaviour(ctx, assignment.AssignID, actor.UserID)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionBotState:
		behaviour.BotState = value
	case ActionHardStopAllTrades:
		behaviour.HardStopAllTrades = value
	case ActionListenToCommonCommander:
		behaviour.ListenToCommonCommander = value
	case ActionNewsBasedStartStop:
		behaviour.NewsBasedStartStop = value
	case ActionRefreshDataFromBot:
		behaviour.RefreshDataFromBot = value
	}
	behaviour.UpdatedBy = null.UintFrom(actor.UserID)

	if err := u.behavRepo.Update(ctx, behaviour); err != nil {
		return nil, err
	}

	metrics.ControlActionsTotal.WithLabelValues(string(action), "allowed").Inc()
	logger.Info(ctx, "bot behaviour flag updated",
		zap.Uint("assign_id", assignID),
		zap.String("action", string(action)),
		zap.Bool("value", value),
		zap.Uint("updated_by", actor.UserID))

	u.decryptBotID(ctx, assignment)
	if !crypto.IsDecryptSentinel(assignment.BotID) {
		if err := u.notifier.NotifyFlagChange(ctx, assignment.BotID, string(action), value); err != nil {
			logger.Warn(ctx, "bot notification failed",
				zap.Uint("assign_id", assignID),
				zap.Error(err))
		}
	}

	return &entities.ControlResult{
		BotID:     assignment.BotID,
		Action:    string(action),
		Value:     value,
		Behaviour: behaviour,
	}, nil
}

// Unassign soft-deletes an assignment. The row and its behaviour state
// are kept, and the fingerprint column still blocks reassigning the
// same bot id.
func (u *BotUsecase) Unassign(ctx context.Context, actor *entities.User, assignID uint) error {
	if _, err := u.assignRepo.GetActiveByID(ctx, assignID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Bot assignment not found")
		}
		return err
	}

	if err := u.assignRepo.SoftDelete(ctx, assignID, actor.UserID); err != nil {
		return err
	}

	metrics.BotAssignmentsTotal.WithLabelValues("unassigned").Inc()
	logger.Info(ctx, "bot unassigned",
		zap.Uint("assign_id", assignID),
		zap.Uint("unassigned_by", actor.UserID))
	return nil
}

// getOrCreateBehaviour fetches the assignment's behaviour row, creating
// it with all flags off if it does not exist yet.
func (u *BotUsecase) getOrCreateBehaviour(ctx context.Context, assignID uint, actorID uint) (*entities.BotBehaviour, error) {
	behaviour, err := u.behavRepo.GetActiveByAssignID(ctx, assignID)
	if err == nil {
		return behaviour, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	behaviour = &entities.BotBehaviour{
		AssignID:  assignID,
		CreatedBy: null.UintFrom(actorID),
		UpdatedBy: null.UintFrom(actorID),
	}
	if err := u.behavRepo.Create(ctx, behaviour); err != nil {
		return nil, err
	}
	return behaviour, nil
}

func parseValidity(raw string) (time.Time, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "Z")
	var lastErr error
	for _, layout := range validityLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}
