package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/davnat/scolaris/internal/app/models"
)

// CreateGradeRequest carries the payload for grade creation. Value may be
// zero, so bounds are checked by the service rather than binding tags.
type CreateGradeRequest struct {
	StudentID int64           `json:"studentId" binding:"required"`
	SubjectID int64           `json:"subjectId" binding:"required"`
	Value     decimal.Decimal `json:"value"`
	MaxValue  decimal.Decimal `json:"maxValue"`
	Date      *time.Time      `json:"date"`
}

// UpdateGradeRequest carries a partial grade update.
type UpdateGradeRequest struct {
	Value    *decimal.Decimal `json:"value"`
	MaxValue *decimal.Decimal `json:"maxValue"`
	Date     *time.Time       `json:"date"`
}

// GradeListResponse is the paged grade listing.
type GradeListResponse struct {
	Items []*models.Grade `json:"items"`
	PaginationInfo
}
