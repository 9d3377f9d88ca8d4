package scheduling

import (
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

// Participants are the two users attached to a booking.
type Participants struct {
	ParentID  string
	TeacherID string
}

// ParticipantsOf extracts the participants of b.
func ParticipantsOf(b *models.Booking) Participants {
	return Participants{ParentID: b.ParentID, TeacherID: b.TeacherID}
}

type transitionKey struct {
	from models.BookingStatus
	to   models.BookingStatus
}

type actorCheck func(actor models.Actor, p Participants) bool

func isTeacher(actor models.Actor, p Participants) bool {
	return actor.ID != "" && actor.ID == p.TeacherID
}

func isParentOrTeacher(actor models.Actor, p Participants) bool {
	return actor.ID != "" && (actor.ID == p.ParentID || actor.ID == p.TeacherID)
}

func isAdmin(actor models.Actor, _ Participants) bool {
	return actor.IsAdmin()
}

var transitions = map[transitionKey]actorCheck{
	{models.BookingPending, models.BookingConfirmed}:   isTeacher,
	{models.BookingPending, models.BookingCancelled}:   isParentOrTeacher,
	{models.BookingConfirmed, models.BookingCancelled}: isParentOrTeacher,
	{models.BookingConfirmed, models.BookingCompleted}: isAdmin,
}

// CheckTransition validates that actor may move a booking owned by p from
// one status to another.
func CheckTransition(actor models.Actor, p Participants, from, to models.BookingStatus) error {
	if !to.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown booking status")
	}
	if from.Terminal() {
		return appErrors.Clone(appErrors.ErrForbiddenTransition, "booking is already "+string(from))
	}
	allowed, ok := transitions[transitionKey{from: from, to: to}]
	if !ok {
		return appErrors.Clone(appErrors.ErrForbiddenTransition, "cannot move booking from "+string(from)+" to "+string(to))
	}
	if !allowed(actor, p) {
		return appErrors.Clone(appErrors.ErrForbiddenTransition, "not allowed to move this booking to "+string(to))
	}
	return nil
}

// NextStatuses lists the statuses actor could move the booking to.
func NextStatuses(actor models.Actor, p Participants, from models.BookingStatus) []models.BookingStatus {
	var out []models.BookingStatus
	for _, to := range []models.BookingStatus{models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted} {
		if CheckTransition(actor, p, from, to) == nil {
			out = append(out, to)
		}
	}
	return out
}
