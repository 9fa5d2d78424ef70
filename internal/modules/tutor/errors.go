package tutor

import "tutorhub/internal/pkg/apperr"

var (
	ErrTutorNotFound  = apperr.NotFound("tutor not found")
	ErrPasswordField  = apperr.Validation("use the password endpoint to change password")
	ErrNoAvailability = apperr.Validation("At least one availability slot is required")
	ErrPriceRange     = apperr.Validation("minPrice must not exceed maxPrice")
)
