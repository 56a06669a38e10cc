package models

import "time"

// Teacher belongs to a department and teaches exactly one subject.
type Teacher struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	LastName      string    `json:"lastName" db:"last_name"`
	FirstName     string    `json:"firstName" db:"first_name"`
	Phone         string    `json:"phone" db:"phone"`
	Email         string    `json:"email" db:"email"`
	FunctionStart time.Time `json:"functionStart" db:"function_start"`
	PayIndex      string    `json:"payIndex" db:"pay_index"`
	DepartmentID  int64     `json:"departmentId" db:"department_id"`
	SubjectID     int64     `json:"subjectId" db:"subject_id"`

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
	Subject    *Subject    `json:"subject,omitempty"`
}
