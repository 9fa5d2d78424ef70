package domain

import "time"

type Review struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	TutorID   string    `json:"tutorId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// Rating summarises every review of a tutor.
type Rating struct {
	Average float64 `json:"average"`
	Total   int64   `json:"total"`
}

// NewRating folds a review count and rating sum into a summary. No rounding.
func NewRating(total, sum int64) Rating {
	if total <= 0 {
		return Rating{}
	}
	return Rating{Average: float64(sum) / float64(total), Total: total}
}
