package dto

// SaveTeacherProfileRequest creates or replaces the calling tutor's listing.
// Subject and neighborhood lists replace the previous ones.
type SaveTeacherProfileRequest struct {
	Bio             *string  `json:"bio,omitempty" validate:"omitempty,max=4000"`
	HourlyRate      *int64   `json:"hourly_rate,omitempty" validate:"omitempty,min=0"`
	Levels          []string `json:"levels" validate:"omitempty,max=2,unique,dive,oneof=college lycee"`
	Address         *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	SubjectIDs      []int64  `json:"subject_ids" validate:"omitempty,max=30,unique,dive,min=1"`
	NeighborhoodIDs []int64  `json:"neighborhood_ids" validate:"omitempty,max=30,unique,dive,min=1"`
}

// TeacherSearchQuery filters GET /teachers.
type TeacherSearchQuery struct {
	SubjectID      *int64 `form:"subject_id"`
	NeighborhoodID *int64 `form:"neighborhood_id"`
	Level          string `form:"level"`
	MaxRate        *int64 `form:"max_rate"`
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
}
