package tutor

import (
	"context"
	"testing"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTutorRepository struct {
	mock.Mock
}

func (m *MockTutorRepository) GetByID(ctx context.Context, id string) (*domain.Tutor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutor), args.Error(1)
}

func (m *MockTutorRepository) Search(ctx context.Context, f repository.TutorFilter) ([]domain.Tutor, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Tutor), args.Get(1).(int64), args.Error(2)
}

func (m *MockTutorRepository) UpdateProfile(ctx context.Context, t *domain.Tutor) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockBookingIndex struct {
	mock.Mock
}

func (m *MockBookingIndex) IDsByTutor(ctx context.Context, tutorID string) ([]string, error) {
	args := m.Called(ctx, tutorID)
	return args.Get(0).([]string), args.Error(1)
}

func floatPtr(v float64) *float64 { return &v }

func TestService_Search_Paginates(t *testing.T) {
	tutors := new(MockTutorRepository)
	ctx := context.Background()

	tutors.On("Search", ctx, repository.TutorFilter{
		Subject: "Math", MaxPrice: floatPtr(30), Limit: 2, Offset: 2,
	}).Return([]domain.Tutor{{ID: "t3"}}, int64(3), nil)

	page, err := NewService(tutors, new(MockBookingIndex)).Search(ctx, SearchQuery{
		Subject: " Math ", MaxPrice: floatPtr(30), Page: "2", Limit: "2",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 2, page.Page)
}

func TestService_Search_PriceRange(t *testing.T) {
	_, err := NewService(new(MockTutorRepository), new(MockBookingIndex)).Search(context.Background(), SearchQuery{
		MinPrice: floatPtr(50), MaxPrice: floatPtr(10),
	})
	assert.ErrorIs(t, err, ErrPriceRange)
}

func TestService_Recommended(t *testing.T) {
	tutors := new(MockTutorRepository)
	ctx := context.Background()
	tutors.On("Search", ctx, mock.MatchedBy(func(f repository.TutorFilter) bool {
		return f.IsVerified != nil && *f.IsVerified && f.Limit == 10
	})).Return([]domain.Tutor{{ID: "t1", IsVerified: true}}, int64(1), nil)

	items, err := NewService(tutors, new(MockBookingIndex)).Recommended(ctx, 0)

	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestService_GetProfile(t *testing.T) {
	tutors := new(MockTutorRepository)
	bookings := new(MockBookingIndex)
	ctx := context.Background()
	tutors.On("GetByID", ctx, "t1").Return(&domain.Tutor{ID: "t1"}, nil)
	tutors.On("GetByID", ctx, "ghost").Return(nil, repository.ErrNotFound)
	bookings.On("IDsByTutor", ctx, "t1").Return([]string{"b1"}, nil)

	svc := NewService(tutors, bookings)

	got, err := svc.GetProfile(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, got.Bookings)

	_, err = svc.GetPublic(ctx, "ghost")
	assert.ErrorIs(t, err, ErrTutorNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	monday := domain.Availability{{Day: domain.Monday, Slots: []domain.TimeSlot{{StartTime: "09:00", EndTime: "10:00"}}}}

	t.Run("rejects password", func(t *testing.T) {
		pw := "secret1"
		_, err := NewService(new(MockTutorRepository), new(MockBookingIndex)).UpdateProfile(ctx, "t1", UpdateProfileRequest{Password: &pw})
		assert.ErrorIs(t, err, ErrPasswordField)
	})

	t.Run("rejects empty availability", func(t *testing.T) {
		empty := domain.Availability{}
		_, err := NewService(new(MockTutorRepository), new(MockBookingIndex)).UpdateProfile(ctx, "t1", UpdateProfileRequest{Availability: &empty})
		assert.ErrorIs(t, err, ErrNoAvailability)
	})

	t.Run("rejects bad slot", func(t *testing.T) {
		bad := domain.Availability{{Day: domain.Friday, Slots: []domain.TimeSlot{{StartTime: "11:00", EndTime: "10:00"}}}}
		_, err := NewService(new(MockTutorRepository), new(MockBookingIndex)).UpdateProfile(ctx, "t1", UpdateProfileRequest{Availability: &bad})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("keeps rating", func(t *testing.T) {
		tutors := new(MockTutorRepository)
		bookings := new(MockBookingIndex)
		stored := &domain.Tutor{ID: "t1", Price: 10, Rating: domain.Rating{Average: 4.5, Total: 2}, IsVerified: true}
		tutors.On("GetByID", ctx, "t1").Return(stored, nil)
		bookings.On("IDsByTutor", ctx, "t1").Return([]string{}, nil)
		tutors.On("UpdateProfile", ctx, mock.AnythingOfType("*domain.Tutor")).Return(nil)

		got, err := NewService(tutors, bookings).UpdateProfile(ctx, "t1", UpdateProfileRequest{
			Price:        floatPtr(35),
			Availability: &monday,
		})

		require.NoError(t, err)
		assert.Equal(t, 35.0, got.Price)
		assert.Equal(t, monday, got.Availability)
		assert.Equal(t, domain.Rating{Average: 4.5, Total: 2}, got.Rating)
		assert.True(t, got.IsVerified)
	})
}
