package models

// Classroom hosts subjects.
type Classroom struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Capacity int     `json:"capacity" db:"capacity"`
	Location *string `json:"location,omitempty" db:"location"`
}
