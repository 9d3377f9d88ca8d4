package dto

import (
	"time"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

// CreateBookingRequest is a parent's reservation request.
type CreateBookingRequest struct {
	TeacherID      string    `json:"teacher_id" validate:"required,uuid"`
	ChildID        *string   `json:"child_id,omitempty" validate:"omitempty,uuid"`
	SubjectID      *int64    `json:"subject_id,omitempty" validate:"omitempty,min=1"`
	NeighborhoodID *int64    `json:"neighborhood_id,omitempty" validate:"omitempty,min=1"`
	StartsAt       string    `json:"starts_at" example:"2024-06-03T08:00:00Z"`
	EndsAt         string    `json:"ends_at" example:"2024-06-03T09:00:00Z"`
	Note           *string   `json:"note,omitempty" validate:"omitempty,max=2000"`
	SubjectIDs     []int64   `json:"subject_ids,omitempty" validate:"omitempty,max=20,dive,min=1"`
}

// BookingResult is returned after a successful creation.
type BookingResult struct {
	Booking *models.Booking
	// OutsideAvailability is set when the slot is not covered by any rule
	// and the advisory policy let it through.
	OutsideAvailability bool
	// SubjectsAttached is false when the tags could not be written.
	SubjectsAttached bool
}

// UpdateBookingStatusRequest asks for a status transition.
type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

// AttachSubjectsRequest adds subject tags to a booking.
type AttachSubjectsRequest struct {
	SubjectIDs []int64 `json:"subject_ids" validate:"required,min=1,max=20,dive,min=1"`
}

// OverlapQuery lists bookings of a tutor overlapping an interval.
type OverlapQuery struct {
	TeacherID string
	StartsAt  time.Time
	EndsAt    time.Time
	Statuses  []models.BookingStatus
}
