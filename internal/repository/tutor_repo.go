package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tutorhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TutorRepository struct {
	db *gorm.DB
}

func NewTutorRepository(db *gorm.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

type tutorModel struct {
	ID             string               `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name           string               `gorm:"column:name;not null"`
	Username       string               `gorm:"column:username;not null;uniqueIndex"`
	Email          string               `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash   string               `gorm:"column:password_hash;not null"`
	ProfilePicture string               `gorm:"column:profile_picture"`
	Profession     string               `gorm:"column:profession"`
	About          string               `gorm:"column:about"`
	Price          float64              `gorm:"column:price;not null;index"`
	Availability   datatypes.JSON       `gorm:"column:availability"`
	Phone          string               `gorm:"column:phone"`
	WhatsApp       string               `gorm:"column:whatsapp"`
	Zoom           string               `gorm:"column:zoom"`
	RatingAverage  float64              `gorm:"column:rating_average;not null;default:0;index"`
	RatingTotal    int64                `gorm:"column:rating_total;not null;default:0"`
	IsVerified     bool                 `gorm:"column:is_verified;not null;default:false;index"`
	Subjects       []tutorSubjectModel  `gorm:"foreignKey:TutorID"`
	Locations      []tutorLocationModel `gorm:"foreignKey:TutorID"`
	CreatedAt      time.Time            `gorm:"column:created_at"`
	UpdatedAt      time.Time            `gorm:"column:updated_at"`
}

func (tutorModel) TableName() string { return "tutors" }

func (m *tutorModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type tutorSubjectModel struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement"`
	TutorID string `gorm:"column:tutor_id;type:varchar(36);not null;index"`
	Name    string `gorm:"column:name;not null;index"`
}

func (tutorSubjectModel) TableName() string { return "tutor_subjects" }

type tutorLocationModel struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement"`
	TutorID string `gorm:"column:tutor_id;type:varchar(36);not null;index"`
	Name    string `gorm:"column:name;not null;index"`
}

func (tutorLocationModel) TableName() string { return "tutor_locations" }

// profileColumns are written by profile updates. Rating and verification
// have their own writers.
var profileColumns = []string{
	"name", "username", "email", "profile_picture", "profession", "about",
	"price", "availability", "phone", "whatsapp", "zoom", "updated_at",
}

func toDomainTutor(m tutorModel) (*domain.Tutor, error) {
	var availability domain.Availability
	if len(m.Availability) > 0 {
		if err := json.Unmarshal(m.Availability, &availability); err != nil {
			return nil, fmt.Errorf("decode availability of tutor %s: %w", m.ID, err)
		}
	}

	subjects := make([]string, 0, len(m.Subjects))
	for _, s := range m.Subjects {
		subjects = append(subjects, s.Name)
	}
	locations := make([]string, 0, len(m.Locations))
	for _, l := range m.Locations {
		locations = append(locations, l.Name)
	}

	return &domain.Tutor{
		ID:             m.ID,
		Name:           m.Name,
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		ProfilePicture: m.ProfilePicture,
		Profession:     m.Profession,
		About:          m.About,
		Price:          m.Price,
		Subjects:       subjects,
		Locations:      locations,
		Availability:   availability,
		Contact: domain.Contact{
			Phone:    m.Phone,
			WhatsApp: m.WhatsApp,
			Zoom:     m.Zoom,
		},
		Rating: domain.Rating{
			Average: m.RatingAverage,
			Total:   m.RatingTotal,
		},
		IsVerified: m.IsVerified,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

func toTutorModel(t *domain.Tutor) (tutorModel, error) {
	availability, err := json.Marshal(t.Availability)
	if err != nil {
		return tutorModel{}, err
	}

	m := tutorModel{
		ID:             t.ID,
		Name:           t.Name,
		Username:       t.Username,
		Email:          t.Email,
		PasswordHash:   t.PasswordHash,
		ProfilePicture: t.ProfilePicture,
		Profession:     t.Profession,
		About:          t.About,
		Price:          t.Price,
		Availability:   datatypes.JSON(availability),
		Phone:          t.Contact.Phone,
		WhatsApp:       t.Contact.WhatsApp,
		Zoom:           t.Contact.Zoom,
		RatingAverage:  t.Rating.Average,
		RatingTotal:    t.Rating.Total,
		IsVerified:     t.IsVerified,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	for _, s := range t.Subjects {
		m.Subjects = append(m.Subjects, tutorSubjectModel{TutorID: t.ID, Name: s})
	}
	for _, l := range t.Locations {
		m.Locations = append(m.Locations, tutorLocationModel{TutorID: t.ID, Name: l})
	}
	return m, nil
}

func toDomainTutors(rows []tutorModel) ([]domain.Tutor, error) {
	out := make([]domain.Tutor, 0, len(rows))
	for _, row := range rows {
		t, err := toDomainTutor(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *TutorRepository) Create(ctx context.Context, t *domain.Tutor) error {
	m, err := toTutorModel(t)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	created, err := toDomainTutor(m)
	if err != nil {
		return err
	}
	*t = *created
	return nil
}

func (r *TutorRepository) GetByID(ctx context.Context, id string) (*domain.Tutor, error) {
	var m tutorModel
	err := r.db.WithContext(ctx).
		Preload("Subjects").
		Preload("Locations").
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainTutor(m)
}

// GetByLogin finds a tutor by email or username.
func (r *TutorRepository) GetByLogin(ctx context.Context, login string) (*domain.Tutor, error) {
	var m tutorModel
	login = strings.TrimSpace(login)
	err := r.db.WithContext(ctx).
		Where("(email = ? OR username = ?)", strings.ToLower(login), login).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainTutor(m)
}

// ExistsByEmailOrUsername ignores the tutor with excludeID so updates can keep their own values.
func (r *TutorRepository) ExistsByEmailOrUsername(ctx context.Context, email, username, excludeID string) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&tutorModel{}).
		Where("(email = ? OR username = ?)", strings.ToLower(email), username)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// UpdateProfile rewrites profile columns and replaces subjects and locations.
func (r *TutorRepository) UpdateProfile(ctx context.Context, t *domain.Tutor) error {
	m, err := toTutorModel(t)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&tutorModel{ID: t.ID}).
			Select(profileColumns).
			Omit(clause.Associations).
			Updates(&m)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("tutor_id = ?", t.ID).Delete(&tutorSubjectModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tutor_id = ?", t.ID).Delete(&tutorLocationModel{}).Error; err != nil {
			return err
		}
		if len(m.Subjects) > 0 {
			if err := tx.Create(&m.Subjects).Error; err != nil {
				return err
			}
		}
		if len(m.Locations) > 0 {
			if err := tx.Create(&m.Locations).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TutorRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	res := r.db.WithContext(ctx).Model(&tutorModel{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TutorFilter narrows tutor listings. Nil pointers and empty strings mean no filter.
type TutorFilter struct {
	Subject    string
	Location   string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	IsVerified *bool
	Limit      int
	Offset     int
}

func (r *TutorRepository) filtered(ctx context.Context, f TutorFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&tutorModel{})
	if f.Subject != "" {
		sub := r.db.Model(&tutorSubjectModel{}).Select("tutor_id").
			Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(f.Subject)))
		q = q.Where("id IN (?)", sub)
	}
	if f.Location != "" {
		sub := r.db.Model(&tutorLocationModel{}).Select("tutor_id").
			Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(f.Location)))
		q = q.Where("id IN (?)", sub)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("rating_average >= ?", *f.MinRating)
	}
	if f.IsVerified != nil {
		q = q.Where("is_verified = ?", *f.IsVerified)
	}
	return q
}

// Search returns one page of matching tutors, best rated first, and the total match count.
func (r *TutorRepository) Search(ctx context.Context, f TutorFilter) ([]domain.Tutor, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.filtered(ctx, f).
		Preload("Subjects").
		Preload("Locations").
		Order("rating_average DESC").
		Order("rating_total DESC").
		Order("created_at ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []tutorModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	tutors, err := toDomainTutors(rows)
	if err != nil {
		return nil, 0, err
	}
	return tutors, total, nil
}
