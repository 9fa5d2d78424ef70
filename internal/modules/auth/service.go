package auth

import (
	"context"
	"errors"
	"strings"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service contains all business logic for authentication
type Service struct {
	students   StudentRepository
	tutors     TutorRepository
	admins     AdminRepository
	jwt        jwtService
	bcryptCost int
	log        *zap.Logger
}

func NewService(
	students StudentRepository,
	tutors TutorRepository,
	admins AdminRepository,
	jwt jwtService,
	bcryptCost int,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		students:   students,
		tutors:     tutors,
		admins:     admins,
		jwt:        jwt,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) SignupStudent(ctx context.Context, req StudentSignupRequest) (*AuthResult, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	exists, err := s.students.ExistsByEmailOrUsername(ctx, email, username, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &domain.Student{
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	s.log.Info("student signed up", zap.String("student_id", student.ID))
	return s.issue(student.ID, domain.RoleStudent, student.Name, student.Email, nil)
}

func (s *Service) SignupTutor(ctx context.Context, req TutorSignupRequest) (*AuthResult, error) {
	if len(req.Availability) == 0 {
		return nil, ErrNoAvailability
	}
	if err := req.Availability.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	exists, err := s.tutors.ExistsByEmailOrUsername(ctx, email, username, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	tutor := &domain.Tutor{
		Name:           strings.TrimSpace(req.Name),
		Username:       username,
		Email:          email,
		PasswordHash:   hash,
		ProfilePicture: req.ProfilePicture,
		Profession:     req.Profession,
		About:          req.About,
		Price:          req.Price,
		Subjects:       req.Subjects,
		Locations:      req.Locations,
		Availability:   req.Availability,
		Contact:        req.Contact,
	}
	if err := s.tutors.Create(ctx, tutor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	s.log.Info("tutor signed up", zap.String("tutor_id", tutor.ID))
	verified := tutor.IsVerified
	return s.issue(tutor.ID, domain.RoleTutor, tutor.Name, tutor.Email, &verified)
}

func (s *Service) LoginStudent(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	login := strings.TrimSpace(req.login())
	if login == "" {
		return nil, ErrLoginRequired
	}

	student, err := s.students.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !checkPassword(student.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(student.ID, domain.RoleStudent, student.Name, student.Email, nil)
}

func (s *Service) LoginTutor(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	login := strings.TrimSpace(req.login())
	if login == "" {
		return nil, ErrLoginRequired
	}

	tutor, err := s.tutors.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !checkPassword(tutor.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	verified := tutor.IsVerified
	return s.issue(tutor.ID, domain.RoleTutor, tutor.Name, tutor.Email, &verified)
}

func (s *Service) LoginAdmin(ctx context.Context, req AdminLoginRequest) (*AuthResult, error) {
	admin, err := s.admins.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !checkPassword(admin.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	s.log.Info("admin logged in", zap.String("admin_id", admin.ID))
	return s.issue(admin.ID, domain.RoleAdmin, admin.Name, admin.Email, nil)
}

// EnsureAdmin creates the admin account unless one with that email exists.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &domain.Admin{Name: name, Email: email, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}

	s.log.Info("admin account created", zap.String("email", email))
	return true, nil
}

func (s *Service) issue(id string, role domain.Role, name, email string, verified *bool) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(id, string(role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token: token,
		User: UserPublic{
			ID:         id,
			Role:       role,
			Name:       name,
			Email:      email,
			IsVerified: verified,
		},
	}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
