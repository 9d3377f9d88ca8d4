package models

import "time"

// AvailabilityRule is a recurring weekly window during which a tutor accepts
// bookings. Times are wall-clock "HH:MM:SS" in the tutor's locale.
type AvailabilityRule struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Weekday   int       `db:"weekday" json:"weekday"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
