package booking

import (
	"fmt"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/apperr"
)

var (
	studentTargets = []domain.BookingStatus{domain.BookingCancelled}
	tutorTargets   = []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled}
)

// AuthorizeTransition checks that actor may move b to target and that the
// state machine allows it.
func AuthorizeTransition(actor domain.Principal, b *domain.Booking, target domain.BookingStatus) error {
	if !target.Valid() {
		return ErrInvalidState
	}

	isStudent := actor.Role == domain.RoleStudent && actor.ID == b.StudentID
	isTutor := actor.Role == domain.RoleTutor && actor.ID == b.TutorID

	switch {
	case isStudent:
		if !contains(studentTargets, target) {
			return ErrStudentAction
		}
	case isTutor:
		if !contains(tutorTargets, target) {
			return ErrTutorAction
		}
	default:
		return ErrNotParty
	}

	if !b.Status.CanTransitionTo(target) {
		return apperr.Conflict(fmt.Sprintf("cannot change booking status from %s to %s", b.Status, target))
	}
	return nil
}

func contains(set []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
