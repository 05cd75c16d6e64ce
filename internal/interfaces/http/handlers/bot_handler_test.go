package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
	"bot-commander.backend/internal/usecases"
)

func botRouter(bots BotService, actor *entities.User) *gin.Engine {
	h := NewBotHandler(bots)
	r := gin.New()
	g := r.Group("/api/bots", withUser(actor))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Assign)
	g.POST("/:id/control", h.Control)
	g.DELETE("/:id", h.Unassign)
	return r
}

var ownerActor = &entities.User{UserID: 7, Email: "trader@bots.io"}

func TestBotHandler_List_OwnBots(t *testing.T) {
	bots := botServiceStub{
		listFn: func(_ context.Context, actor *entities.User, forUserID *uint) ([]*entities.BotAssignment, error) {
			assert.Equal(t, uint(7), actor.UserID)
			assert.Nil(t, forUserID)
			return []*entities.BotAssignment{{AssignID: 1, UserID: 7, BotID: "MT4-AUDUSD-001"}}, nil
		},
	}
	w := serve(botRouter(bots, ownerActor), httptest.NewRequest(http.MethodGet, "/api/bots", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MT4-AUDUSD-001")
}

func TestBotHandler_List_UserIDQuery(t *testing.T) {
	bots := botServiceStub{
		listFn: func(_ context.Context, _ *entities.User, forUserID *uint) ([]*entities.BotAssignment, error) {
			require.NotNil(t, forUserID)
			assert.Equal(t, uint(9), *forUserID)
			return []*entities.BotAssignment{}, nil
		},
	}
	w := serve(botRouter(bots, adminActor), httptest.NewRequest(http.MethodGet, "/api/bots?user_id=9", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBotHandler_List_BadUserIDQuery(t *testing.T) {
	bots := botServiceStub{
		listFn: func(context.Context, *entities.User, *uint) ([]*entities.BotAssignment, error) {
			t.Fatal("service must not be called for a malformed query")
			return nil, nil
		},
	}
	w := serve(botRouter(bots, adminActor), httptest.NewRequest(http.MethodGet, "/api/bots?user_id=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBotHandler_Get(t *testing.T) {
	bots := botServiceStub{
		getFn: func(_ context.Context, _ *entities.User, assignID uint) (*entities.BotDetail, error) {
			assert.Equal(t, uint(3), assignID)
			return &entities.BotDetail{
				BotAssignment:   entities.BotAssignment{AssignID: 3, UserID: 7, BotID: "MT4-AUDUSD-001"},
				CanAdminControl: true,
				Behaviour:       &entities.BotBehaviour{BotBehavID: 11, AssignID: 3},
			}, nil
		},
	}
	w := serve(botRouter(bots, ownerActor), httptest.NewRequest(http.MethodGet, "/api/bots/3", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"can_admin_control":true`)
}

func TestBotHandler_Assign(t *testing.T) {
	bots := botServiceStub{
		assignFn: func(_ context.Context, actor *entities.User, input *entities.AssignBotInput) (*entities.BotAssignment, error) {
			assert.Equal(t, uint(7), input.UserID)
			assert.Equal(t, "MT4-AUDUSD-001", input.BotID)
			return &entities.BotAssignment{AssignID: 3, UserID: 7, BotID: input.BotID}, nil
		},
	}
	w := serve(botRouter(bots, adminActor), postJSON("/api/bots", `{"user_id":7,"bot_id":"MT4-AUDUSD-001"}`))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Bot assigned successfully")
}

func TestBotHandler_Assign_Conflict(t *testing.T) {
	bots := botServiceStub{
		assignFn: func(context.Context, *entities.User, *entities.AssignBotInput) (*entities.BotAssignment, error) {
			return nil, domainerrors.Conflict("This bot is already assigned")
		},
	}
	w := serve(botRouter(bots, adminActor), postJSON("/api/bots", `{"user_id":7,"bot_id":"MT4-AUDUSD-001"}`))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already assigned")
}

func TestBotHandler_Assign_MissingFields(t *testing.T) {
	bots := botServiceStub{
		assignFn: func(context.Context, *entities.User, *entities.AssignBotInput) (*entities.BotAssignment, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	w := serve(botRouter(bots, adminActor), postJSON("/api/bots", `{"user_id":7}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBotHandler_Control_BehaviourFlag(t *testing.T) {
	bots := botServiceStub{
		setFlagFn: func(_ context.Context, _ *entities.User, assignID uint, action usecases.ControlAction, value bool) (*entities.ControlResult, error) {
			assert.Equal(t, uint(3), assignID)
			assert.Equal(t, usecases.ActionBotState, action)
			assert.True(t, value)
			return &entities.ControlResult{BotID: "MT4-AUDUSD-001", Action: string(action), Value: value}, nil
		},
	}
	w := serve(botRouter(bots, ownerActor), postJSON("/api/bots/3/control", `{"action":"bot_state","value":true}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bot behaviour updated successfully")
}

func TestBotHandler_Control_Validity(t *testing.T) {
	bots := botServiceStub{
		setValidityFn: func(_ context.Context, _ *entities.User, assignID uint, raw string) (*entities.BotAssignment, error) {
			assert.Equal(t, "2026-12-31T23:59:00Z", raw)
			return &entities.BotAssignment{AssignID: assignID, UserID: 7}, nil
		},
	}
	w := serve(botRouter(bots, adminActor), postJSON("/api/bots/3/control", `{"action":"validity","value":"2026-12-31T23:59:00Z"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Validity updated successfully")
}

func TestBotHandler_Control_ValidityNullClears(t *testing.T) {
	bots := botServiceStub{
		setValidityFn: func(_ context.Context, _ *entities.User, _ uint, raw string) (*entities.BotAssignment, error) {
			assert.Empty(t, raw)
			return &entities.BotAssignment{AssignID: 3, UserID: 7}, nil
		},
	}
	w := serve(botRouter(bots, adminActor), postJSON("/api/bots/3/control", `{"action":"validity","value":null}`))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBotHandler_Control_AdminControlGrant(t *testing.T) {
	bots := botServiceStub{
		setGrantFn: func(_ context.Context, _ *entities.User, assignID uint, allow bool) (*entities.BotAssignment, error) {
			assert.Equal(t, uint(3), assignID)
			assert.True(t, allow)
			return &entities.BotAssignment{AssignID: 3, UserID: 7, AllowAdminControl: true}, nil
		},
	}
	w := serve(botRouter(bots, ownerActor), postJSON("/api/bots/3/control", `{"action":"allow_admin_control","value":true}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin control permission updated successfully")
}

func TestBotHandler_Control_InvalidAction(t *testing.T) {
	w := serve(botRouter(botServiceStub{}, ownerActor), postJSON("/api/bots/3/control", `{"action":"self_destruct","value":true}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid action")
}

func TestBotHandler_Control_ValueTypeMismatch(t *testing.T) {
	r := botRouter(botServiceStub{}, ownerActor)

	// flag actions want a boolean
	w := serve(r, postJSON("/api/bots/3/control", `{"action":"bot_state","value":"yes"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// validity wants a string
	w = serve(r, postJSON("/api/bots/3/control", `{"action":"validity","value":true}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBotHandler_Control_ForbiddenFromService(t *testing.T) {
	bots := botServiceStub{
		setFlagFn: func(context.Context, *entities.User, uint, usecases.ControlAction, bool) (*entities.ControlResult, error) {
			return nil, domainerrors.Forbidden("access denied")
		},
	}
	w := serve(botRouter(bots, ownerActor), postJSON("/api/bots/3/control", `{"action":"bot_state","value":true}`))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBotHandler_Unassign(t *testing.T) {
	var removed uint
	bots := botServiceStub{
		unassignFn: func(_ context.Context, _ *entities.User, assignID uint) error {
			removed = assignID
			return nil
		},
	}
	w := serve(botRouter(bots, adminActor), httptest.NewRequest(http.MethodDelete, "/api/bots/3", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), removed)
	assert.Contains(t, w.Body.String(), "Bot unassigned successfully")
}
