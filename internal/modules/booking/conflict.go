package booking

import (
	"context"
	"errors"
	"time"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

// ConflictChecker decides whether a tutor can take a booking for an exact slot.
type ConflictChecker struct {
	tutors   TutorReader
	bookings BookingRepository
}

func NewConflictChecker(tutors TutorReader, bookings BookingRepository) *ConflictChecker {
	return &ConflictChecker{tutors: tutors, bookings: bookings}
}

// Check fails with the first failing rule: the weekday is declared, the window
// matches a declared slot exactly, and no pending or confirmed booking holds it.
func (c *ConflictChecker) Check(ctx context.Context, tutorID, date, startTime, endTime string) error {
	day, err := domain.ParseDate(date)
	if err != nil {
		return ErrInvalidDate
	}

	tutor, err := c.tutors.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTutorNotFound
		}
		return err
	}

	return c.checkTutor(ctx, tutor, day, startTime, endTime)
}

func (c *ConflictChecker) checkTutor(ctx context.Context, tutor *domain.Tutor, day time.Time, startTime, endTime string) error {
	declared, ok := tutor.Availability.Day(domain.WeekdayOf(day))
	if !ok {
		return ErrTutorUnavailable
	}
	if !declared.HasSlot(startTime, endTime) {
		return ErrInvalidSlot
	}

	taken, err := c.bookings.ExistsActiveSlot(ctx, tutor.ID, day.Format(domain.DateLayout), startTime, endTime)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotBooked
	}
	return nil
}
