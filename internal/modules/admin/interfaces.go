package admin

import (
	"context"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

type TutorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Tutor, error)
	Search(ctx context.Context, f repository.TutorFilter) ([]domain.Tutor, int64, error)
	SetVerified(ctx context.Context, id string, verified bool) error
}

type StatsRepository interface {
	Platform(ctx context.Context) (*repository.PlatformStats, error)
}
