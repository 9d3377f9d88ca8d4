package models

import "time"

// ChangeEventType names the kind of row change that happened.
type ChangeEventType string

const (
	EventBookingCreated          ChangeEventType = "booking.created"
	EventBookingStatusChanged    ChangeEventType = "booking.status_changed"
	EventBookingSubjectsAttached ChangeEventType = "booking.subjects_attached"
	EventMessageCreated          ChangeEventType = "message.created"
)

// ChangeEvent notifies subscribers that something about a booking changed.
// Consumers are expected to re-fetch rather than apply the payload.
type ChangeEvent struct {
	Type       ChangeEventType `json:"type"`
	BookingID  string          `json:"booking_id"`
	ParentID   string          `json:"parent_id"`
	TeacherID  string          `json:"teacher_id"`
	Status     BookingStatus   `json:"status,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ChangeEventFor builds an event addressed to both participants of b.
func ChangeEventFor(eventType ChangeEventType, b *Booking) ChangeEvent {
	return ChangeEvent{
		Type:       eventType,
		BookingID:  b.ID,
		ParentID:   b.ParentID,
		TeacherID:  b.TeacherID,
		Status:     b.Status,
		OccurredAt: time.Now().UTC(),
	}
}
