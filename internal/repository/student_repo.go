package repository

import (
	"context"
	"strings"
	"time"

	"tutorhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentModel struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name         string    `gorm:"column:name;not null"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Phone        string    `gorm:"column:phone"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (studentModel) TableName() string { return "students" }

func (m *studentModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func toDomainStudent(m studentModel) *domain.Student {
	return &domain.Student{
		ID:           m.ID,
		Name:         m.Name,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toStudentModel(s *domain.Student) studentModel {
	return studentModel{
		ID:           s.ID,
		Name:         s.Name,
		Username:     s.Username,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Phone:        s.Phone,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (r *StudentRepository) Create(ctx context.Context, s *domain.Student) error {
	m := toStudentModel(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*s = *toDomainStudent(m)
	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	var m studentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainStudent(m), nil
}

// GetByLogin finds a student by email or username.
func (r *StudentRepository) GetByLogin(ctx context.Context, login string) (*domain.Student, error) {
	var m studentModel
	login = strings.TrimSpace(login)
	err := r.db.WithContext(ctx).
		Where("(email = ? OR username = ?)", strings.ToLower(login), login).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainStudent(m), nil
}

func (r *StudentRepository) ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&studentModel{}).
		Where("(email = ? OR username = ?)", strings.ToLower(email), username)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *StudentRepository) UpdateProfile(ctx context.Context, s *domain.Student) error {
	m := toStudentModel(s)
	res := r.db.WithContext(ctx).Model(&studentModel{ID: s.ID}).
		Select("name", "username", "email", "phone", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
