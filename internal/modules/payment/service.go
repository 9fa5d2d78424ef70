package payment

import (
	"context"
	"errors"
	"math"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	bookings BookingRepository
	tutors   TutorGate
	provider Provider
	refunds  Refunds
	currency string
	log      *zap.Logger
}

func NewService(
	bookings BookingRepository,
	tutors TutorGate,
	provider Provider,
	refunds Refunds,
	currency string,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		bookings: bookings,
		tutors:   tutors,
		provider: provider,
		refunds:  refunds,
		currency: currency,
		log:      log,
	}
}

// Amount is the charge for a booking in minor units: hourly price times slot length.
func Amount(price float64, b *domain.Booking) int64 {
	return int64(math.Round(price * b.DurationHours() * 100))
}

func (s *Service) CreateIntent(ctx context.Context, studentID, bookingID string) (*IntentResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.StudentID != studentID {
		return nil, ErrNotOwner
	}
	if b.PaymentStatus == domain.PaymentPaid || b.PaymentStatus == domain.PaymentRefunded {
		return nil, ErrAlreadyPaid
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrNotConfirmed
	}

	tutor, err := s.tutors.GetByID(ctx, b.TutorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}

	amount := Amount(tutor.Price, b)
	if amount <= 0 {
		return nil, ErrZeroAmount
	}

	intent, err := s.provider.CreateIntent(ctx, IntentParams{
		BookingID: b.ID,
		Amount:    amount,
		Currency:  s.currency,
	})
	if err != nil {
		return nil, err
	}
	if err := s.bookings.SetTransactionID(ctx, b.ID, intent.ID); err != nil {
		return nil, err
	}

	s.log.Info("payment intent created",
		zap.String("booking_id", b.ID),
		zap.String("transaction_id", intent.ID),
		zap.Int64("amount", amount),
	)

	return &IntentResponse{
		ClientSecret:  intent.ClientSecret,
		TransactionID: intent.ID,
		Amount:        amount,
		Currency:      s.currency,
	}, nil
}

// HandleWebhook marks a pending booking paid on a succeeded intent. Other
// event types are acknowledged and ignored. A booking that was cancelled
// before or while the payment settled is refunded. Redelivery for a paid or
// refunded booking changes nothing.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		s.log.Warn("webhook rejected", zap.Error(err))
		return ErrInvalidSignature
	}
	if ev.Type != EventIntentSucceeded {
		s.log.Debug("webhook ignored", zap.String("event_type", ev.Type), zap.String("event_id", ev.ID))
		return nil
	}

	b, err := s.bookings.GetByTransactionID(ctx, ev.IntentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownIntent
		}
		return err
	}

	if b.PaymentStatus == domain.PaymentPending {
		err := s.bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentPending, domain.PaymentPaid)
		switch {
		case err == nil:
			s.log.Info("payment succeeded",
				zap.String("booking_id", b.ID),
				zap.String("transaction_id", ev.IntentID),
			)
		case errors.Is(err, repository.ErrStale):
			s.log.Debug("payment status already moved", zap.String("booking_id", b.ID))
		default:
			return err
		}
	}

	// the booking may have been cancelled after it was read
	if _, err := s.refunds.RefundCancelled(ctx, b.ID); err != nil {
		s.log.Error("refund of cancelled booking failed", zap.String("booking_id", b.ID), zap.Error(err))
		return err
	}
	return nil
}
