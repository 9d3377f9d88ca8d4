package models

import "time"

// Child is a pupil managed by a parent account and attached to bookings.
type Child struct {
	ID        string    `db:"id" json:"id"`
	ParentID  string    `db:"parent_id" json:"parent_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Level     Level     `db:"level" json:"level"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
