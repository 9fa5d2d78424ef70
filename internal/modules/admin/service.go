package admin

import (
	"context"
	"errors"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/repository"

	"go.uber.org/zap"
)

var ErrTutorNotFound = apperr.NotFound("tutor not found")

type Service struct {
	tutors TutorRepository
	stats  StatsRepository
	log    *zap.Logger
}

func NewService(tutors TutorRepository, stats StatsRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{tutors: tutors, stats: stats, log: log}
}

// -------------------- Tutors moderation --------------------

func (s *Service) ListTutors(ctx context.Context, q ListTutorsQuery) (pagination.Page[domain.Tutor], error) {
	p := pagination.Parse(q.Page, q.Limit, pagination.AdminOpts)
	items, total, err := s.tutors.Search(ctx, repository.TutorFilter{
		IsVerified: q.IsVerified,
		Limit:      p.Limit,
		Offset:     p.Offset(),
	})
	if err != nil {
		return pagination.Page[domain.Tutor]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *Service) SetTutorVerified(ctx context.Context, adminID, tutorID string, verified bool) (*domain.Tutor, error) {
	if err := s.tutors.SetVerified(ctx, tutorID, verified); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}

	t, err := s.tutors.GetByID(ctx, tutorID)
	if err != nil {
		return nil, err
	}

	s.log.Info("tutor verification changed",
		zap.String("tutor_id", tutorID),
		zap.Bool("verified", verified),
		zap.String("admin_id", adminID),
	)
	return t, nil
}

// -------------------- Statistics --------------------

func (s *Service) Statistics(ctx context.Context) (*repository.PlatformStats, error) {
	return s.stats.Platform(ctx)
}
