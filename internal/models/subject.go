package models

// Subject is a taught discipline used to tag bookings.
type Subject struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Neighborhood is a district where lessons take place.
type Neighborhood struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
