package payment

import "tutorhub/internal/pkg/apperr"

var (
	ErrBookingNotFound  = apperr.NotFound("booking not found")
	ErrTutorNotFound    = apperr.NotFound("tutor not found")
	ErrNotOwner         = apperr.Forbidden("not authorized to pay for this booking")
	ErrNotConfirmed     = apperr.Validation("booking is not confirmed")
	ErrAlreadyPaid      = apperr.Conflict("booking is already paid")
	ErrZeroAmount       = apperr.Validation("booking amount must be positive")
	ErrInvalidSignature = apperr.Validation("invalid webhook signature")
	ErrUnknownIntent    = apperr.NotFound("no booking for this payment")
)
