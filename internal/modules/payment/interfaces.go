package payment

import (
	"context"

	"tutorhub/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByTransactionID(ctx context.Context, txnID string) (*domain.Booking, error)
	SetTransactionID(ctx context.Context, id, txnID string) error
	UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error
}

// Refunds settles bookings that were cancelled after the student paid.
type Refunds interface {
	RefundCancelled(ctx context.Context, bookingID string) (domain.PaymentStatus, error)
}

type TutorGate interface {
	GetByID(ctx context.Context, id string) (*domain.Tutor, error)
}

// Provider is the payment gateway.
type Provider interface {
	CreateIntent(ctx context.Context, p IntentParams) (*Intent, error)
	// ParseWebhook verifies the signature header and decodes the event.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
