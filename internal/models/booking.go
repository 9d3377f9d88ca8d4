package models

import "time"

// BookingStatus enumerates the reservation lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ActiveBookingStatuses are the statuses that hold a slot on the tutor's calendar.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// Terminal reports whether no further transition can leave the status.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking is a reservation between a parent and a tutor.
type Booking struct {
	ID             string        `db:"id" json:"id"`
	ParentID       string        `db:"parent_id" json:"parent_id"`
	TeacherID      string        `db:"teacher_id" json:"teacher_id"`
	ChildID        *string       `db:"child_id" json:"child_id,omitempty"`
	SubjectID      *int64        `db:"subject_id" json:"subject_id,omitempty"`
	NeighborhoodID *int64        `db:"neighborhood_id" json:"neighborhood_id,omitempty"`
	StartsAt       time.Time     `db:"starts_at" json:"starts_at"`
	EndsAt         time.Time     `db:"ends_at" json:"ends_at"`
	Note           *string       `db:"note" json:"note,omitempty"`
	Status         BookingStatus `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
	SubjectIDs     []int64       `db:"-" json:"subject_ids,omitempty"`
}

// IsParticipant reports whether the user is the booking's parent or tutor.
func (b *Booking) IsParticipant(userID string) bool {
	return userID != "" && (b.ParentID == userID || b.TeacherID == userID)
}

// BookingRef is the slice of a booking the overlap check reports.
type BookingRef struct {
	ID       string        `db:"id" json:"id"`
	StartsAt time.Time     `db:"starts_at" json:"starts_at"`
	EndsAt   time.Time     `db:"ends_at" json:"ends_at"`
	Status   BookingStatus `db:"status" json:"status"`
}

// BookingFilter narrows booking listings. Empty fields are ignored.
type BookingFilter struct {
	ParentID  string
	TeacherID string
	Status    BookingStatus
}
