package auth

import (
	"context"

	"tutorhub/internal/domain"
)

type jwtService interface {
	GenerateToken(userID string, role string) (string, error)
}

type StudentRepository interface {
	Create(ctx context.Context, s *domain.Student) error
	GetByLogin(ctx context.Context, login string) (*domain.Student, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error)
}

type TutorRepository interface {
	Create(ctx context.Context, t *domain.Tutor) error
	GetByLogin(ctx context.Context, login string) (*domain.Tutor, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error)
}

type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
