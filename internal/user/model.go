package user

import (
	"net/http"
	"time"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name is required")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// User is an account that can list items and book other users' items.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Filter defines options for listing users.
type Filter struct {
	Email string
	Name  string

	Page     int
	PageSize int
}
