package review

import "tutorhub/internal/domain"

type CreateReviewRequest struct {
	TutorID string `json:"tutorId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// ReviewResult carries the tutor's rating as recomputed after the write.
type ReviewResult struct {
	Review      *domain.Review `json:"review,omitempty"`
	TutorRating domain.Rating  `json:"tutorRating"`
}
