package student

import "tutorhub/internal/pkg/apperr"

var (
	ErrStudentNotFound = apperr.NotFound("student not found")
	ErrPasswordField   = apperr.Validation("use the password endpoint to change password")
	ErrAccountExists   = apperr.Conflict("username or email already in use")
)
