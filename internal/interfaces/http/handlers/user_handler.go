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
)

// UserService is the user management surface the handler depends on
type UserService interface {
	List(ctx context.Context) ([]*entities.User, error)
	Get(ctx context.Context, id uint) (*entities.User, error)
	Create(ctx context.Context, actor *entities.User, input *entities.CreateUserInput) (*entities.User, error)
	Update(ctx context.Context, actor *entities.User, targetID uint, input *entities.UpdateUserInput) (*entities.User, error)
	Delete(ctx context.Context, actor *entities.User, targetID uint) error
}

// UserHandler handles user management endpoints. All routes sit behind
// the admin middleware.
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// List returns all users
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// Get returns one user
// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Create creates a user with credentials
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input entities.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.users.Create(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// Update partially updates a user
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.users.Update(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete removes a user and everything attached to it
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}
