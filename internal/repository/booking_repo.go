package repository

import (
	"context"
	"time"

	"tutorhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	StudentID     string    `gorm:"column:student_id;type:varchar(36);not null;index"`
	TutorID       string    `gorm:"column:tutor_id;type:varchar(36);not null;index"`
	Date          string    `gorm:"column:date;type:varchar(10);not null"`
	StartTime     string    `gorm:"column:start_time;type:varchar(5);not null"`
	EndTime       string    `gorm:"column:end_time;type:varchar(5);not null"`
	Subject       string    `gorm:"column:subject;not null"`
	Location      *string   `gorm:"column:location"`
	Status        string    `gorm:"column:status;not null;index"`
	PaymentStatus string    `gorm:"column:payment_status;not null"`
	TransactionID *string   `gorm:"column:transaction_id;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func (m *bookingModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func toDomainBooking(m bookingModel) *domain.Booking {
	var location, txn string
	if m.Location != nil {
		location = *m.Location
	}
	if m.TransactionID != nil {
		txn = *m.TransactionID
	}

	return &domain.Booking{
		ID:            m.ID,
		StudentID:     m.StudentID,
		TutorID:       m.TutorID,
		Date:          m.Date,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Subject:       m.Subject,
		Location:      location,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		TransactionID: txn,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var location, txn *string
	if b.Location != "" {
		v := b.Location
		location = &v
	}
	if b.TransactionID != "" {
		v := b.TransactionID
		txn = &v
	}

	return bookingModel{
		ID:            b.ID,
		StudentID:     b.StudentID,
		TutorID:       b.TutorID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Subject:       b.Subject,
		Location:      location,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		TransactionID: txn,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomainBooking(row))
	}
	return out
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveBookingStatuses))
	for _, s := range domain.ActiveBookingStatuses {
		out = append(out, string(s))
	}
	return out
}

// Create fails with ErrDuplicate when an active booking already holds the slot.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByTransactionID(ctx context.Context, txnID string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, "transaction_id = ?", txnID).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBooking(m), nil
}

// ExistsActiveSlot reports whether a pending or confirmed booking holds the exact slot.
func (r *BookingRepository) ExistsActiveSlot(ctx context.Context, tutorID, date, startTime, endTime string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("tutor_id = ? AND date = ? AND start_time = ? AND end_time = ?", tutorID, date, startTime, endTime).
		Where("status IN ?", activeStatuses()).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ActiveSlots lists the slots held by pending or confirmed bookings on a date.
func (r *BookingRepository) ActiveSlots(ctx context.Context, tutorID, date string) ([]domain.TimeSlot, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where("tutor_id = ? AND date = ?", tutorID, date).
		Where("status IN ?", activeStatuses()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.TimeSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TimeSlot{StartTime: row.StartTime, EndTime: row.EndTime})
	}
	return out, nil
}

func (r *BookingRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) ListByTutor(ctx context.Context, tutorID string) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

// IDsByStudent is the student's booking back-reference set.
func (r *BookingRepository) IDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// IDsByTutor is the tutor's booking back-reference set.
func (r *BookingRepository) IDsByTutor(ctx context.Context, tutorID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("tutor_id = ?", tutorID).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// UpdateStatus moves a booking from one status to another. It returns ErrStale
// when the booking is no longer in the expected status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStale
	}
	return nil
}

// UpdatePaymentStatus moves the payment status from one value to another. It
// returns ErrStale when the booking is no longer in the expected payment status.
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND payment_status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"payment_status": string(to),
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStale
	}
	return nil
}

func (r *BookingRepository) SetTransactionID(ctx context.Context, id, txnID string) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"transaction_id": txnID,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the booking. The back-reference sets of both parties are
// derived from this table, so they shrink with it.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&bookingModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListConfirmedOnOrBefore returns confirmed bookings dated on or before date ("YYYY-MM-DD").
func (r *BookingRepository) ListConfirmedOnOrBefore(ctx context.Context, date string) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND date <= ?", string(domain.BookingConfirmed), date).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) HasCompletedBooking(ctx context.Context, studentID, tutorID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("student_id = ? AND tutor_id = ? AND status = ?", studentID, tutorID, string(domain.BookingCompleted)).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
