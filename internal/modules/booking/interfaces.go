package booking

import (
	"context"

	"tutorhub/internal/domain"
)

// BookingRepository is the persistence the booking service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ExistsActiveSlot(ctx context.Context, tutorID, date, startTime, endTime string) (bool, error)
	ActiveSlots(ctx context.Context, tutorID, date string) ([]domain.TimeSlot, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Booking, error)
	ListByTutor(ctx context.Context, tutorID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error
	Delete(ctx context.Context, id string) error
	ListConfirmedOnOrBefore(ctx context.Context, date string) ([]domain.Booking, error)
}

type TutorReader interface {
	GetByID(ctx context.Context, id string) (*domain.Tutor, error)
}

// Notifier receives booking events. Delivery is best effort.
type Notifier interface {
	BookingCreated(b *domain.Booking)
	BookingStatusChanged(b *domain.Booking, from domain.BookingStatus)
}

// Refunder returns the money of a paid booking.
type Refunder interface {
	Refund(ctx context.Context, transactionID string) error
}
