package models

import "time"

// Review is a parent's rating of a completed booking.
type Review struct {
	ID        string    `db:"id" json:"id"`
	BookingID string    `db:"booking_id" json:"booking_id"`
	ParentID  string    `db:"parent_id" json:"parent_id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RatingSummary aggregates a tutor's reviews.
type RatingSummary struct {
	TeacherID string  `db:"teacher_id" json:"teacher_id"`
	Average   float64 `db:"average" json:"average"`
	Count     int     `db:"count" json:"count"`
}
