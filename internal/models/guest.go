package models

import (
	"errors"
	"strings"
	"time"
)

// Role represents the role of an authenticated party
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// Guest represents a guest profile. Profiles are read-mostly reference
// data, created at signup or lazily on first authenticated call.
type Guest struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Role         Role      `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the guest holds the admin role.
func (g *Guest) IsAdmin() bool {
	return g.Role == RoleAdmin
}

// Actor is the authenticated party invoking an operation, as resolved
// by the serving layer before the engine is called.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SignupRequest represents the request to create an account
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse represents issued tokens plus the guest profile
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Guest        *Guest `json:"guest"`
}

// Validate validates the signup request
func (r *SignupRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is not valid")
	}
	if len(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
