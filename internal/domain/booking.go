package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ActiveBookingStatuses hold a slot. Everything else frees it.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// CanTransitionTo reports whether the state machine has an edge s -> next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"studentId"`
	TutorID       string        `json:"tutorId"`
	Date          string        `json:"date"`
	StartTime     string        `json:"startTime"`
	EndTime       string        `json:"endTime"`
	Subject       string        `json:"subject"`
	Location      string        `json:"location,omitempty"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	TransactionID string        `json:"transactionId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// DurationHours is the length of the booked slot.
func (b *Booking) DurationHours() float64 {
	start, err1 := time.Parse("15:04", b.StartTime)
	end, err2 := time.Parse("15:04", b.EndTime)
	if err1 != nil || err2 != nil || !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}

// EndsAt is the UTC instant the slot finishes.
func (b *Booking) EndsAt() (time.Time, error) {
	day, err := ParseDate(b.Date)
	if err != nil {
		return time.Time{}, err
	}
	end, err := time.Parse("15:04", b.EndTime)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute), nil
}

// IsParty reports whether userID is the booking's student or tutor.
func (b *Booking) IsParty(userID string) bool {
	return userID != "" && (b.StudentID == userID || b.TutorID == userID)
}
