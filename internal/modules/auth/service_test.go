package auth

import (
	"context"
	"testing"
	"time"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/jwt"
	"tutorhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, s *domain.Student) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = "student-1"
	}
	return args.Error(0)
}

func (m *MockStudentRepository) GetByLogin(ctx context.Context, login string) (*domain.Student, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error) {
	args := m.Called(ctx, email, username, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockTutorRepository struct {
	mock.Mock
}

func (m *MockTutorRepository) Create(ctx context.Context, t *domain.Tutor) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil {
		t.ID = "tutor-1"
	}
	return args.Error(0)
}

func (m *MockTutorRepository) GetByLogin(ctx context.Context, login string) (*domain.Tutor, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutor), args.Error(1)
}

func (m *MockTutorRepository) ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error) {
	args := m.Called(ctx, email, username, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

type fixture struct {
	students *MockStudentRepository
	tutors   *MockTutorRepository
	admins   *MockAdminRepository
	tokens   *jwt.Service
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		students: new(MockStudentRepository),
		tutors:   new(MockTutorRepository),
		admins:   new(MockAdminRepository),
		tokens:   jwt.New("test-secret", time.Hour),
	}
	f.svc = NewService(f.students, f.tutors, f.admins, f.tokens, bcrypt.MinCost, nil)
	return f
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_SignupStudent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.students.On("ExistsByEmailOrUsername", ctx, "sam@example.com", "sam", "").Return(false, nil)
	f.students.On("Create", ctx, mock.MatchedBy(func(s *domain.Student) bool {
		return s.PasswordHash != "secret1" && bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)

	out, err := f.svc.SignupStudent(ctx, StudentSignupRequest{
		Name: "Sam", Username: "sam", Email: " Sam@Example.com ", Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", out.User.Email)
	assert.Equal(t, domain.RoleStudent, out.User.Role)

	claims, err := f.tokens.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestService_SignupStudent_Duplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.students.On("ExistsByEmailOrUsername", ctx, "sam@example.com", "sam", "").Return(true, nil).Once()
	_, err := f.svc.SignupStudent(ctx, StudentSignupRequest{Name: "Sam", Username: "sam", Email: "sam@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountExists)

	f.students.On("ExistsByEmailOrUsername", ctx, "sam@example.com", "sam", "").Return(false, nil).Once()
	f.students.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()
	_, err = f.svc.SignupStudent(ctx, StudentSignupRequest{Name: "Sam", Username: "sam", Email: "sam@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestService_SignupTutor_RequiresAvailability(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SignupTutor(context.Background(), TutorSignupRequest{
		Name: "Ada", Username: "ada", Email: "ada@example.com", Password: "secret1",
	})

	assert.ErrorIs(t, err, ErrNoAvailability)
	assert.EqualError(t, err, "At least one availability slot is required")
	f.tutors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_SignupTutor_RejectsOverlappingSlots(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SignupTutor(context.Background(), TutorSignupRequest{
		Name: "Ada", Username: "ada", Email: "ada@example.com", Password: "secret1",
		Availability: domain.Availability{{Day: domain.Monday, Slots: []domain.TimeSlot{
			{StartTime: "09:00", EndTime: "11:00"},
			{StartTime: "10:00", EndTime: "12:00"},
		}}},
	})

	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestService_SignupTutor_Unverified(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tutors.On("ExistsByEmailOrUsername", ctx, "ada@example.com", "ada", "").Return(false, nil)
	f.tutors.On("Create", ctx, mock.AnythingOfType("*domain.Tutor")).Return(nil)

	out, err := f.svc.SignupTutor(ctx, TutorSignupRequest{
		Name: "Ada", Username: "ada", Email: "ada@example.com", Password: "secret1", Price: 25,
		Availability: domain.Availability{{Day: domain.Monday, Slots: []domain.TimeSlot{{StartTime: "09:00", EndTime: "10:00"}}}},
	})

	require.NoError(t, err)
	require.NotNil(t, out.User.IsVerified)
	assert.False(t, *out.User.IsVerified)
	assert.Equal(t, domain.RoleTutor, out.User.Role)
}

func TestService_LoginStudent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	stored := &domain.Student{ID: "student-1", Name: "Sam", Email: "sam@example.com", PasswordHash: hashOf(t, "secret1")}

	f.students.On("GetByLogin", ctx, "sam").Return(stored, nil)
	f.students.On("GetByLogin", ctx, "ghost").Return(nil, repository.ErrNotFound)

	out, err := f.svc.LoginStudent(ctx, LoginRequest{Username: "sam", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, err = f.svc.LoginStudent(ctx, LoginRequest{Username: "sam", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.LoginStudent(ctx, LoginRequest{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.LoginStudent(ctx, LoginRequest{Password: "secret1"})
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestService_LoginTutor_ByEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	stored := &domain.Tutor{ID: "tutor-1", Name: "Ada", Email: "ada@example.com", PasswordHash: hashOf(t, "secret1"), IsVerified: true}
	f.tutors.On("GetByLogin", ctx, "ada@example.com").Return(stored, nil)

	out, err := f.svc.LoginTutor(ctx, LoginRequest{Email: "ada@example.com", Username: "ignored", Password: "secret1"})

	require.NoError(t, err)
	assert.True(t, *out.User.IsVerified)
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when missing", func(t *testing.T) {
		f := newFixture()
		f.admins.On("GetByEmail", ctx, "root@example.com").Return(nil, repository.ErrNotFound)
		f.admins.On("Create", ctx, mock.MatchedBy(func(a *domain.Admin) bool {
			return a.Email == "root@example.com" && a.PasswordHash != ""
		})).Return(nil)

		created, err := f.svc.EnsureAdmin(ctx, "Root", "Root@example.com", "secret1")

		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("keeps existing", func(t *testing.T) {
		f := newFixture()
		f.admins.On("GetByEmail", ctx, "root@example.com").Return(&domain.Admin{ID: "a1"}, nil)

		created, err := f.svc.EnsureAdmin(ctx, "Root", "root@example.com", "secret1")

		require.NoError(t, err)
		assert.False(t, created)
		f.admins.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_LoginAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.admins.On("GetByEmail", ctx, "root@example.com").
		Return(&domain.Admin{ID: "a1", Email: "root@example.com", PasswordHash: hashOf(t, "secret1")}, nil)

	out, err := f.svc.LoginAdmin(ctx, AdminLoginRequest{Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, out.User.Role)

	_, err = f.svc.LoginAdmin(ctx, AdminLoginRequest{Email: "root@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
