package student

import (
	"context"
	"testing"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error) {
	args := m.Called(ctx, email, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) UpdateProfile(ctx context.Context, s *domain.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockBookingIndex struct {
	mock.Mock
}

func (m *MockBookingIndex) IDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]string), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestService_GetProfile_IncludesBookings(t *testing.T) {
	students := new(MockStudentRepository)
	bookings := new(MockBookingIndex)
	ctx := context.Background()

	students.On("GetByID", ctx, "s1").Return(&domain.Student{ID: "s1", Name: "Sam"}, nil)
	bookings.On("IDsByStudent", ctx, "s1").Return([]string{"b1", "b2"}, nil)

	st, err := NewService(students, bookings).GetProfile(ctx, "s1")

	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, st.Bookings)
}

func TestService_GetProfile_NotFound(t *testing.T) {
	students := new(MockStudentRepository)
	ctx := context.Background()
	students.On("GetByID", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, err := NewService(students, new(MockBookingIndex)).GetProfile(ctx, "ghost")

	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects password", func(t *testing.T) {
		students := new(MockStudentRepository)
		_, err := NewService(students, new(MockBookingIndex)).UpdateProfile(ctx, "s1", UpdateProfileRequest{Password: strPtr("newpass")})
		assert.ErrorIs(t, err, ErrPasswordField)
		students.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("updates fields", func(t *testing.T) {
		students := new(MockStudentRepository)
		bookings := new(MockBookingIndex)
		students.On("GetByID", ctx, "s1").Return(&domain.Student{ID: "s1", Name: "Sam", Username: "sam", Email: "sam@example.com"}, nil)
		bookings.On("IDsByStudent", ctx, "s1").Return([]string{}, nil)
		students.On("ExistsByEmailOrUsername", ctx, "new@example.com", "sam", "s1").Return(false, nil)
		students.On("UpdateProfile", ctx, mock.MatchedBy(func(s *domain.Student) bool {
			return s.Email == "new@example.com" && s.Phone == "+254700000000"
		})).Return(nil)

		st, err := NewService(students, bookings).UpdateProfile(ctx, "s1", UpdateProfileRequest{
			Email: strPtr("New@Example.com"),
			Phone: strPtr("+254700000000"),
		})

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", st.Email)
	})

	t.Run("email taken", func(t *testing.T) {
		students := new(MockStudentRepository)
		bookings := new(MockBookingIndex)
		students.On("GetByID", ctx, "s1").Return(&domain.Student{ID: "s1", Username: "sam", Email: "sam@example.com"}, nil)
		bookings.On("IDsByStudent", ctx, "s1").Return([]string{}, nil)
		students.On("ExistsByEmailOrUsername", ctx, "sam@example.com", "taken", "s1").Return(true, nil)

		_, err := NewService(students, bookings).UpdateProfile(ctx, "s1", UpdateProfileRequest{Username: strPtr("taken")})

		assert.ErrorIs(t, err, ErrAccountExists)
	})
}
