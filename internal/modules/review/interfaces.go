package review

import (
	"context"

	"tutorhub/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ExistsByStudentAndTutor(ctx context.Context, studentID, tutorID string) (bool, error)
	ListByTutor(ctx context.Context, tutorID string) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// RatingStore recounts a tutor's reviews and stores the summary.
type RatingStore interface {
	RecomputeTutorRating(ctx context.Context, tutorID string) (domain.Rating, error)
}

type TutorGate interface {
	GetByID(ctx context.Context, id string) (*domain.Tutor, error)
}

type BookingGate interface {
	HasCompletedBooking(ctx context.Context, studentID, tutorID string) (bool, error)
}
