package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// User represents an account identity. Authentication material lives in
// Login so a user can exist before credentials are issued.
type User struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedOn time.Time `json:"created_on"`
}

// Login represents a user's credentials
type Login struct {
	LoginID   uint      `json:"login_id"`
	UserID    uint      `json:"user_id"`
	Password  string    `json:"-"` // bcrypt digest, never plaintext
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	CreatedBy null.Uint `json:"-"`
	UpdatedOn time.Time `json:"-"`
	UpdatedBy null.Uint `json:"-"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserInput represents partial input for updating a user. Nil
// pointers leave the corresponding field untouched.
type UpdateUserInput struct {
	Email   *string `json:"email"`
	Name    *string `json:"name"`
	IsAdmin *bool   `json:"is_admin"`
}
