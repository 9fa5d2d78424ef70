package review

import (
	"context"
	"errors"
	"fmt"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	reviews          ReviewRepository
	ratings          *Aggregator
	tutors           TutorGate
	bookings         BookingGate
	requireCompleted bool
	log              *zap.Logger
}

// NewService builds the review service. With requireCompleted set, a student
// needs a completed booking with the tutor before reviewing them.
func NewService(
	reviews ReviewRepository,
	ratings *Aggregator,
	tutors TutorGate,
	bookings BookingGate,
	requireCompleted bool,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		reviews:          reviews,
		ratings:          ratings,
		tutors:           tutors,
		bookings:         bookings,
		requireCompleted: requireCompleted,
		log:              log,
	}
}

func (s *Service) ensureTutor(ctx context.Context, tutorID string) error {
	if _, err := s.tutors.GetByID(ctx, tutorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTutorNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Create(ctx context.Context, studentID string, req CreateReviewRequest) (*ReviewResult, error) {
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, ErrInvalidRating
	}
	if err := s.ensureTutor(ctx, req.TutorID); err != nil {
		return nil, err
	}

	if s.requireCompleted {
		ok, err := s.bookings.HasCompletedBooking(ctx, studentID, req.TutorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrReviewNotAllowed
		}
	}

	exists, err := s.reviews.ExistsByStudentAndTutor(ctx, studentID, req.TutorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rv := &domain.Review{
		StudentID: studentID,
		TutorID:   req.TutorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	rating, err := s.ratings.Recompute(ctx, rv.TutorID)
	if err != nil {
		return nil, fmt.Errorf("recompute rating of tutor %s: %w", rv.TutorID, err)
	}

	s.log.Info("review created",
		zap.String("review_id", rv.ID),
		zap.String("tutor_id", rv.TutorID),
		zap.Float64("rating_average", rating.Average),
		zap.Int64("rating_total", rating.Total),
	)
	return &ReviewResult{Review: rv, TutorRating: rating}, nil
}

// Delete removes a review on behalf of its author or an admin.
func (s *Service) Delete(ctx context.Context, actor domain.Principal, reviewID string) (*ReviewResult, error) {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && actor.ID != rv.StudentID {
		return nil, ErrDeleteForbidden
	}

	if err := s.reviews.Delete(ctx, rv.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	rating, err := s.ratings.Recompute(ctx, rv.TutorID)
	if err != nil {
		return nil, fmt.Errorf("recompute rating of tutor %s: %w", rv.TutorID, err)
	}

	s.log.Info("review deleted",
		zap.String("review_id", rv.ID),
		zap.String("tutor_id", rv.TutorID),
		zap.String("actor_id", actor.ID),
	)
	return &ReviewResult{TutorRating: rating}, nil
}

func (s *Service) ListByTutor(ctx context.Context, tutorID string) ([]domain.Review, error) {
	if err := s.ensureTutor(ctx, tutorID); err != nil {
		return nil, err
	}
	return s.reviews.ListByTutor(ctx, tutorID)
}
