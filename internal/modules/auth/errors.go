package auth

import "tutorhub/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Unauthorized("invalid credentials")
	ErrAccountExists      = apperr.Conflict("username or email already in use")
	ErrLoginRequired      = apperr.Validation("email or username is required")
	ErrNoAvailability     = apperr.Validation("At least one availability slot is required")
)
