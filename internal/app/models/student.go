package models

// Student owns enrollments and grades.
type Student struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"userId" db:"user_id"`
	LastName  string `json:"lastName" db:"last_name"`
	FirstName string `json:"firstName" db:"first_name"`
	Phone     string `json:"phone" db:"phone"`
	Email     string `json:"email" db:"email"`
	EntryYear int    `json:"entryYear" db:"entry_year"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}
