package service

import (
	"errors"

	"github.com/MarcoAlber/KanMind/internal/access"
)

var (
	// ErrNotFound and ErrForbidden come straight from the access guard so
	// handlers can match on either package.
	ErrNotFound  = access.ErrNotFound
	ErrForbidden = access.ErrForbidden

	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)
