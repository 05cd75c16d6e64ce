package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
	"bot-commander.backend/internal/interfaces/http/middleware"
	"bot-commander.backend/internal/interfaces/http/response"
	"bot-commander.backend/internal/usecases"
)

// BotService is the bot assignment surface the handler depends on
type BotService interface {
	List(ctx context.Context, actor *entities.User, forUserID *uint) ([]*entities.BotAssignment, error)
	Get(ctx context.Context, actor *entities.User, assignID uint) (*entities.BotDetail, error)
	Assign(ctx context.Context, actor *entities.User, input *entities.AssignBotInput) (*entities.BotAssignment, error)
	SetValidity(ctx context.Context, actor *entities.User, assignID uint, raw string) (*entities.BotAssignment, error)
	SetAdminControlGrant(ctx context.Context, actor *entities.User, assignID uint, allow bool) (*entities.BotAssignment, error)
	SetBehaviourFlag(ctx context.Context, actor *entities.User, assignID uint, action usecases.ControlAction, value bool) (*entities.ControlResult, error)
	Unassign(ctx context.Context, actor *entities.User, assignID uint) error
}

// BotHandler handles bot assignment and control endpoints
type BotHandler struct {
	bots BotService
}

// NewBotHandler creates a new bot handler
func NewBotHandler(bots BotService) *BotHandler {
	return &BotHandler{bots: bots}
}

// List returns the caller's bots, or another user's for an admin
// GET /api/bots[?user_id=N]
func (h *BotHandler) List(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var forUserID *uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid user_id"))
			return
		}
		id := uint(parsed)
		forUserID = &id
	}

	bots, err := h.bots.List(c.Request.Context(), actor, forUserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bots": bots})
}

// Get returns the detail view of one assignment
// GET /api/bots/:id
func (h *BotHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.bots.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// Assign binds a bot to a user
// POST /api/bots
func (h *BotHandler) Assign(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input entities.AssignBotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("user_id and bot_id are required"))
		return
	}

	assignment, err := h.bots.Assign(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Bot assigned successfully",
		"bot":     assignment,
	})
}

// Control applies one control action to an assignment. The value type
// depends on the action: a string for validity, a boolean for the
// admin-control grant and the behaviour flags.
// POST /api/bots/:id/control
func (h *BotHandler) Control(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.ControlBotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("action is required"))
		return
	}

	action, ok := usecases.ParseAction(input.Action)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid action. Valid actions: "+usecases.ValidActionNames()))
		return
	}

	ctx := c.Request.Context()
	switch {
	case action == usecases.ActionValidity:
		raw, ok := validityValue(input.Value)
		if !ok {
			response.Error(c, domainerrors.BadRequest("Validity value must be a string or null"))
			return
		}
		updated, err := h.bots.SetValidity(ctx, actor, id, raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"message": "Validity updated successfully",
			"bot":     updated,
		})

	case action == usecases.ActionAllowAdminControl:
		allow, ok := input.Value.(bool)
		if !ok {
			response.Error(c, domainerrors.BadRequest("Value must be a boolean"))
			return
		}
		updated, err := h.bots.SetAdminControlGrant(ctx, actor, id, allow)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"message": "Admin control permission updated successfully",
			"bot":     updated,
		})

	default:
		value, ok := input.Value.(bool)
		if !ok {
			response.Error(c, domainerrors.BadRequest("Value must be a boolean"))
			return
		}
		result, err := h.bots.SetBehaviourFlag(ctx, actor, id, action, value)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"message": "Bot behaviour updated successfully",
			"result":  result,
		})
	}
}

// Unassign soft-deletes an assignment
// DELETE /api/bots/:id
func (h *BotHandler) Unassign(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.bots.Unassign(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Bot unassigned successfully",
	})
}

// validityValue accepts a string or an explicit null; null clears the
// expiry the same way an empty string does.
func validityValue(v interface{}) (string, bool) {
	if v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}
