package tutor

import (
	"context"
	"errors"
	"strings"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"
)

const defaultRecommended = 10

type TutorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Tutor, error)
	Search(ctx context.Context, f repository.TutorFilter) ([]domain.Tutor, int64, error)
	UpdateProfile(ctx context.Context, t *domain.Tutor) error
}

type BookingIndex interface {
	IDsByTutor(ctx context.Context, tutorID string) ([]string, error)
}

type Service struct {
	tutors   TutorRepository
	bookings BookingIndex
}

func NewService(tutors TutorRepository, bookings BookingIndex) *Service {
	return &Service{tutors: tutors, bookings: bookings}
}

// Search lists tutors matching the query, best rated first.
func (s *Service) Search(ctx context.Context, q SearchQuery) (pagination.Page[domain.Tutor], error) {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return pagination.Page[domain.Tutor]{}, ErrPriceRange
	}

	p := pagination.Parse(q.Page, q.Limit, pagination.DefaultOpts)
	items, total, err := s.tutors.Search(ctx, repository.TutorFilter{
		Subject:   strings.TrimSpace(q.Subject),
		Location:  strings.TrimSpace(q.Location),
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinRating: q.Rating,
		Limit:     p.Limit,
		Offset:    p.Offset(),
	})
	if err != nil {
		return pagination.Page[domain.Tutor]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

// Recommended returns the best rated verified tutors.
func (s *Service) Recommended(ctx context.Context, limit int) ([]domain.Tutor, error) {
	if limit <= 0 {
		limit = defaultRecommended
	}
	if limit > pagination.DefaultOpts.MaxLimit {
		limit = pagination.DefaultOpts.MaxLimit
	}

	verified := true
	items, _, err := s.tutors.Search(ctx, repository.TutorFilter{IsVerified: &verified, Limit: limit})
	return items, err
}

// GetPublic returns a tutor profile without booking references.
func (s *Service) GetPublic(ctx context.Context, id string) (*domain.Tutor, error) {
	t, err := s.tutors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetProfile returns the tutor with the ids of all their bookings.
func (s *Service) GetProfile(ctx context.Context, id string) (*domain.Tutor, error) {
	t, err := s.GetPublic(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.bookings.IDsByTutor(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Bookings = ids
	return t, nil
}

// UpdateProfile never touches rating, verification or credentials.
func (s *Service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*domain.Tutor, error) {
	if req.Password != nil {
		return nil, ErrPasswordField
	}
	if req.Availability != nil {
		if len(*req.Availability) == 0 {
			return nil, ErrNoAvailability
		}
		if err := req.Availability.Validate(); err != nil {
			return nil, apperr.Validation(err.Error())
		}
	}

	t, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.ProfilePicture != nil {
		t.ProfilePicture = *req.ProfilePicture
	}
	if req.Profession != nil {
		t.Profession = *req.Profession
	}
	if req.About != nil {
		t.About = *req.About
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
	if req.Subjects != nil {
		t.Subjects = *req.Subjects
	}
	if req.Locations != nil {
		t.Locations = *req.Locations
	}
	if req.Availability != nil {
		t.Availability = *req.Availability
	}
	if req.Contact != nil {
		t.Contact = *req.Contact
	}

	if err := s.tutors.UpdateProfile(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}
	return t, nil
}
