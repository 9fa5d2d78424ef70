package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/keylock"
	"tutorhub/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	bookings BookingRepository
	tutors   TutorReader
	checker  *ConflictChecker
	locker   keylock.Locker
	notifier Notifier
	refunder Refunder
	log      *zap.Logger
	now      func() time.Time
}

// NewService wires the booking service. notifier and refunder may be nil.
func NewService(
	bookings BookingRepository,
	tutors TutorReader,
	locker keylock.Locker,
	notifier Notifier,
	refunder Refunder,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		tutors:   tutors,
		checker:  NewConflictChecker(tutors, bookings),
		locker:   locker,
		notifier: notifier,
		refunder: refunder,
		log:      log,
		now:      time.Now,
	}
}

func scheduleLockKey(tutorID string) string {
	return "booking:" + tutorID
}

// Create books a slot for the student. The conflict check and the insert run
// under the tutor's schedule lock.
func (s *Service) Create(ctx context.Context, studentID string, req CreateBookingRequest) (*domain.Booking, error) {
	day, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !domain.IsClock(req.StartTime) || !domain.IsClock(req.EndTime) || req.StartTime >= req.EndTime {
		return nil, ErrInvalidTime
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return nil, ErrPastDate
	}

	unlock, err := s.locker.Lock(ctx, scheduleLockKey(req.TutorID))
	if err != nil {
		return nil, fmt.Errorf("lock tutor schedule: %w", err)
	}
	defer unlock()

	if err := s.checker.Check(ctx, req.TutorID, req.Date, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		StudentID:     studentID,
		TutorID:       req.TutorID,
		Date:          day.Format(domain.DateLayout),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Subject:       req.Subject,
		Location:      req.Location,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		// another instance won the race past the lock
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlotBooked
		}
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("tutor_id", b.TutorID),
		zap.String("student_id", b.StudentID),
		zap.String("date", b.Date),
		zap.String("start", b.StartTime),
	)
	if s.notifier != nil {
		s.notifier.BookingCreated(b)
	}
	return b, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// Get returns a booking to one of its parties or an admin.
func (s *Service) Get(ctx context.Context, actor domain.Principal, id string) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !b.IsParty(actor.ID) {
		return nil, ErrViewForbidden
	}
	return b, nil
}

func (s *Service) ListForStudent(ctx context.Context, studentID string) ([]domain.Booking, error) {
	return s.bookings.ListByStudent(ctx, studentID)
}

func (s *Service) ListForTutor(ctx context.Context, tutorID string) ([]domain.Booking, error) {
	return s.bookings.ListByTutor(ctx, tutorID)
}

// UpdateStatus applies a transition requested by one of the booking's parties.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Principal, id string, target domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeTransition(actor, b, target); err != nil {
		return nil, err
	}

	if err := s.transition(ctx, b, target); err != nil {
		return nil, err
	}
	s.log.Info("booking status changed",
		zap.String("booking_id", b.ID),
		zap.String("status", string(target)),
		zap.String("actor_id", actor.ID),
		zap.String("actor_role", string(actor.Role)),
	)
	return b, nil
}

func (s *Service) transition(ctx context.Context, b *domain.Booking, target domain.BookingStatus) error {
	from := b.Status
	if err := s.bookings.UpdateStatus(ctx, b.ID, from, target); err != nil {
		switch {
		case errors.Is(err, repository.ErrStale):
			return ErrStatusChanged
		case errors.Is(err, repository.ErrNotFound):
			return ErrBookingNotFound
		}
		return err
	}
	b.Status = target

	if target == domain.BookingCancelled {
		status, err := s.RefundCancelled(ctx, b.ID)
		if err != nil {
			s.log.Error("refund after cancel failed", zap.String("booking_id", b.ID), zap.Error(err))
		} else {
			b.PaymentStatus = status
		}
	}
	if s.notifier != nil {
		s.notifier.BookingStatusChanged(b, from)
	}
	return nil
}

func refundLockKey(bookingID string) string {
	return "refund:" + bookingID
}

// RefundCancelled refunds a cancelled booking that is still marked paid and
// returns the payment status it ends with. Calls for one booking run one at a
// time and reload the booking, so a payment that settles while the booking is
// being cancelled is refunded exactly once. A failed refund leaves the booking
// "paid" so the call can be retried.
func (s *Service) RefundCancelled(ctx context.Context, id string) (domain.PaymentStatus, error) {
	unlock, err := s.locker.Lock(ctx, refundLockKey(id))
	if err != nil {
		return "", fmt.Errorf("lock refund: %w", err)
	}
	defer unlock()

	b, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	if b.Status != domain.BookingCancelled || b.PaymentStatus != domain.PaymentPaid {
		return b.PaymentStatus, nil
	}
	if s.refunder == nil || b.TransactionID == "" {
		s.log.Warn("paid booking cancelled without a refund provider", zap.String("booking_id", b.ID))
		return b.PaymentStatus, nil
	}

	if err := s.refunder.Refund(ctx, b.TransactionID); err != nil {
		return b.PaymentStatus, fmt.Errorf("refund %s: %w", b.TransactionID, err)
	}
	if err := s.bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentPaid, domain.PaymentRefunded); err != nil {
		return b.PaymentStatus, fmt.Errorf("mark booking refunded: %w", err)
	}
	s.log.Info("booking refunded",
		zap.String("booking_id", b.ID),
		zap.String("transaction_id", b.TransactionID),
	)
	return domain.PaymentRefunded, nil
}

// Delete hard-deletes a booking in any state.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	s.log.Info("booking deleted", zap.String("booking_id", id))
	return nil
}

// DaySlots lists the tutor's declared slots for the weekday of date.
func (s *Service) DaySlots(ctx context.Context, tutorID, date string) (*DaySlotsResponse, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	tutor, err := s.tutors.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}

	weekday := domain.WeekdayOf(day)
	out := &DaySlotsResponse{TutorID: tutor.ID, Date: date, Day: weekday, Slots: []SlotView{}}

	declared, ok := tutor.Availability.Day(weekday)
	if !ok {
		return out, nil
	}

	held, err := s.bookings.ActiveSlots(ctx, tutor.ID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[domain.TimeSlot]bool, len(held))
	for _, h := range held {
		taken[h] = true
	}
	for _, slot := range declared.Slots {
		out.Slots = append(out.Slots, SlotView{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Booked:    taken[slot],
		})
	}
	return out, nil
}

// CompleteEnded marks confirmed bookings whose slot has finished as completed.
func (s *Service) CompleteEnded(ctx context.Context) (int, error) {
	now := s.now().UTC()
	due, err := s.bookings.ListConfirmedOnOrBefore(ctx, now.Format(domain.DateLayout))
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range due {
		b := &due[i]
		ends, err := b.EndsAt()
		if err != nil {
			s.log.Warn("skip booking with malformed slot", zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		if ends.After(now) {
			continue
		}
		if err := s.transition(ctx, b, domain.BookingCompleted); err != nil {
			if errors.Is(err, ErrStatusChanged) {
				continue
			}
			return completed, err
		}
		completed++
	}

	if completed > 0 {
		s.log.Info("completed ended bookings", zap.Int("count", completed))
	}
	return completed, nil
}
