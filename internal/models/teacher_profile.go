package models

import (
	"time"

	"github.com/lib/pq"
)

// Level is a school cycle a tutor teaches or a child attends.
type Level string

const (
	LevelCollege Level = "college"
	LevelLycee   Level = "lycee"
)

// TeacherProfile is a tutor's public marketplace listing.
type TeacherProfile struct {
	UserID        string         `db:"user_id" json:"user_id"`
	FullName      string         `db:"full_name" json:"full_name"`
	Bio           *string        `db:"bio" json:"bio,omitempty"`
	HourlyRate    *int64         `db:"hourly_rate" json:"hourly_rate,omitempty"`
	Levels        pq.StringArray `db:"levels" json:"levels"`
	Address       *string        `db:"address" json:"address,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
	Subjects      []Subject      `db:"-" json:"subjects"`
	Neighborhoods []Neighborhood `db:"-" json:"neighborhoods"`
}

// TeacherSearchFilter narrows the tutor directory. Zero values do not filter.
type TeacherSearchFilter struct {
	SubjectID      *int64
	NeighborhoodID *int64
	Level          Level
	MaxRate        *int64
	Limit          int
	Offset         int
}
