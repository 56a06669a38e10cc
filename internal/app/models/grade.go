package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade is a single mark on its own value/maxValue basis. Value never
// exceeds MaxValue and MaxValue is strictly positive.
type Grade struct {
	ID        int64           `json:"id" db:"id"`
	StudentID int64           `json:"studentId" db:"student_id"`
	SubjectID int64           `json:"subjectId" db:"subject_id"`
	Value     decimal.Decimal `json:"value" db:"value"`
	MaxValue  decimal.Decimal `json:"maxValue" db:"max_value"`
	Date      time.Time       `json:"date" db:"date"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}
