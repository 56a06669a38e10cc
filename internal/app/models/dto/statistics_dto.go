package dto

import (
	"github.com/shopspring/decimal"

	"github.com/davnat/scolaris/internal/app/models"
)

// SubjectStatistics summarizes the normalized scores of one subject.
// All fields are zero when the subject has no grades.
type SubjectStatistics struct {
	Average decimal.Decimal `json:"average"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Count   int             `json:"count"`
}

// StudentRank is a student's 1-based position among the students of a
// subject that have a nonzero average.
type StudentRank struct {
	Rank  int `json:"rank"`
	Total int `json:"total"`
}

// MissingGradesResponse lists the subjects a student is enrolled in
// without having received any grade.
type MissingGradesResponse struct {
	Subjects []*models.Subject `json:"subjects"`
}
