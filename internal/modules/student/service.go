package student

import (
	"context"
	"errors"
	"strings"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error)
	UpdateProfile(ctx context.Context, s *domain.Student) error
}

type BookingIndex interface {
	IDsByStudent(ctx context.Context, studentID string) ([]string, error)
}

type Service struct {
	students StudentRepository
	bookings BookingIndex
}

func NewService(students StudentRepository, bookings BookingIndex) *Service {
	return &Service{students: students, bookings: bookings}
}

// GetProfile returns the student with the ids of all their bookings.
func (s *Service) GetProfile(ctx context.Context, id string) (*domain.Student, error) {
	st, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	ids, err := s.bookings.IDsByStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Bookings = ids
	return st, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*domain.Student, error) {
	if req.Password != nil {
		return nil, ErrPasswordField
	}

	st, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		st.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		st.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Username != nil || req.Email != nil {
		if req.Username != nil {
			st.Username = strings.TrimSpace(*req.Username)
		}
		if req.Email != nil {
			st.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		taken, err := s.students.ExistsByEmailOrUsername(ctx, st.Email, st.Username, st.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrAccountExists
		}
	}

	if err := s.students.UpdateProfile(ctx, st); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAccountExists
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return st, nil
}
