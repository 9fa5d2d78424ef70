package repository

import (
	"context"
	"time"

	"tutorhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	StudentID string    `gorm:"column:student_id;type:varchar(36);not null;uniqueIndex:ux_reviews_student_tutor"`
	TutorID   string    `gorm:"column:tutor_id;type:varchar(36);not null;uniqueIndex:ux_reviews_student_tutor;index"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func (m *reviewModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:        m.ID,
		StudentID: m.StudentID,
		TutorID:   m.TutorID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create fails with ErrDuplicate when the student already reviewed the tutor.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		ID:        rv.ID,
		StudentID: rv.StudentID,
		TutorID:   rv.TutorID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var m reviewModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) ExistsByStudentAndTutor(ctx context.Context, studentID, tutorID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("student_id = ? AND tutor_id = ?", studentID, tutorID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ReviewRepository) ListByTutor(ctx context.Context, tutorID string) ([]domain.Review, error) {
	var rows []reviewModel
	err := r.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomainReview(row))
	}
	return out, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&reviewModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type ratingRow struct {
	Total int64
	Sum   int64
}

// RecomputeTutorRating recounts every review of the tutor and writes the
// summary back in one transaction.
func (r *ReviewRepository) RecomputeTutorRating(ctx context.Context, tutorID string) (domain.Rating, error) {
	var rating domain.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row ratingRow
		err := tx.Model(&reviewModel{}).
			Select("COUNT(*) AS total, COALESCE(SUM(rating), 0) AS sum").
			Where("tutor_id = ?", tutorID).
			Scan(&row).Error
		if err != nil {
			return err
		}

		rating = domain.NewRating(row.Total, row.Sum)

		res := tx.Model(&tutorModel{}).
			Where("id = ?", tutorID).
			Updates(map[string]interface{}{
				"rating_average": rating.Average,
				"rating_total":   rating.Total,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return rating, err
}
