package models

import "time"

// Enrollment links a student to a subject. Unique per (student, subject)
// pair; grades can only exist for enrolled pairs.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	SubjectID  int64     `json:"subjectId" db:"subject_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}
