package dto

import "time"

// CreateAvailabilityRequest declares a weekly window for the calling tutor.
type CreateAvailabilityRequest struct {
	Weekday   *int   `json:"weekday" validate:"required,min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// CoverageQuery asks whether a tutor's rules cover an interval.
type CoverageQuery struct {
	StartsAt string `form:"starts_at"`
	EndsAt   string `form:"ends_at"`
}

// CoverageResponse reports the coverage check outcome.
type CoverageResponse struct {
	TeacherID string    `json:"teacher_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Covered   bool      `json:"covered"`
	Conflicts int       `json:"conflicts"`
	Available bool      `json:"available"`
	Timezone  string    `json:"timezone"`
}
