package review

import "tutorhub/internal/pkg/apperr"

var (
	ErrInvalidRating    = apperr.Validation("rating must be between 1 and 5")
	ErrTutorNotFound    = apperr.NotFound("tutor not found")
	ErrReviewNotFound   = apperr.NotFound("review not found")
	ErrAlreadyReviewed  = apperr.Conflict("you have already reviewed this tutor")
	ErrDeleteForbidden  = apperr.Forbidden("not allowed to delete this review")
	ErrReviewNotAllowed = apperr.Forbidden("you can only review a tutor after a completed session")
)
