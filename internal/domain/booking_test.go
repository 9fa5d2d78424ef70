package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Transitions(t *testing.T) {
	allowed := map[[2]BookingStatus]bool{
		{BookingPending, BookingConfirmed}:   true,
		{BookingPending, BookingCancelled}:   true,
		{BookingConfirmed, BookingCompleted}: true,
		{BookingConfirmed, BookingCancelled}: true,
	}
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]BookingStatus{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_TerminalAndActive(t *testing.T) {
	assert.True(t, BookingCompleted.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.False(t, BookingPending.IsTerminal())

	assert.True(t, BookingPending.IsActive())
	assert.True(t, BookingConfirmed.IsActive())
	assert.False(t, BookingCancelled.IsActive())
	assert.False(t, BookingCompleted.IsActive())

	assert.False(t, BookingStatus("archived").Valid())
}

func TestNewRating(t *testing.T) {
	assert.Equal(t, Rating{Average: 4, Total: 3}, NewRating(3, 12))
	assert.Equal(t, Rating{Average: 4.5, Total: 2}, NewRating(2, 9))
	assert.Equal(t, Rating{}, NewRating(0, 0))
	assert.InDelta(t, 3.6666666, NewRating(3, 11).Average, 1e-6)
}

func TestBooking_IsParty(t *testing.T) {
	b := &Booking{StudentID: "s1", TutorID: "t1"}
	assert.True(t, b.IsParty("s1"))
	assert.True(t, b.IsParty("t1"))
	assert.False(t, b.IsParty("x"))
	assert.False(t, b.IsParty(""))
}
