package booking

import "tutorhub/internal/pkg/apperr"

var (
	ErrTutorNotFound   = apperr.NotFound("tutor not found")
	ErrBookingNotFound = apperr.NotFound("booking not found")

	ErrInvalidDate  = apperr.Validation("date must be YYYY-MM-DD")
	ErrPastDate     = apperr.Validation("booking date is in the past")
	ErrInvalidTime  = apperr.Validation("startTime and endTime must be HH:MM with startTime before endTime")
	ErrInvalidState = apperr.Validation("unknown booking status")

	ErrTutorUnavailable = apperr.Conflict("tutor unavailable this day")
	ErrInvalidSlot      = apperr.Conflict("invalid time slot")
	ErrSlotBooked       = apperr.Conflict("slot already booked")
	ErrStatusChanged    = apperr.Conflict("booking status changed, reload and retry")

	ErrNotParty      = apperr.Unauthorized("not authorized")
	ErrStudentAction = apperr.Unauthorized("students can only cancel bookings")
	ErrTutorAction   = apperr.Unauthorized("tutors can only confirm, complete or cancel bookings")
	ErrViewForbidden = apperr.Forbidden("not authorized to view this booking")
)
