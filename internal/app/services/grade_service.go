package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
	"github.com/davnat/scolaris/internal/pkg/helpers"
	"github.com/shopspring/decimal"
)

// GradeStore is the persistence surface GradeService depends on.
type GradeStore interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, studentID, subjectID *int64, offset, limit int) ([]*models.Grade, int64, error)
}

// EnrollmentGetter resolves the enrollment of a (student, subject) pair,
// for the grade creation guard.
type EnrollmentGetter interface {
	GetByPair(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error)
}

// GradeService handles grade business logic. Grades are scoped to the
// department of their subject, which is what lets teachers and department
// heads record grades without touching anything else.
type GradeService struct {
	grades      GradeStore
	subjects    SubjectGetter
	students    StudentGetter
	enrollments EnrollmentGetter
	authz       Authorizer
	logger      zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(
	grades GradeStore,
	subjects SubjectGetter,
	students StudentGetter,
	enrollments EnrollmentGetter,
	authz Authorizer,
	logger zerolog.Logger,
) *GradeService {
	return &GradeService{
		grades:      grades,
		subjects:    subjects,
		students:    students,
		enrollments: enrollments,
		authz:       authz,
		logger:      logger,
	}
}

// CreateGrade records a grade for an enrolled student. The student must be
// enrolled in the subject before any grade can be recorded.
func (s *GradeService) CreateGrade(ctx context.Context, principal *auth.Principal, req *dto.CreateGradeRequest) (*models.Grade, error) {
	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	if !s.authz.CanManage(ctx, principal, auth.ResourceGrade, subject.DepartmentID) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage grades in this department")
	}

	if err := validateGradeBounds(req.Value, req.MaxValue); err != nil {
		return nil, err
	}
	if _, err := s.students.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.enrollments.GetByPair(ctx, req.StudentID, req.SubjectID); err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil, apperrors.NewConflictError("student is not enrolled in this subject")
		}
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	grade := &models.Grade{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Value:     req.Value,
		MaxValue:  req.MaxValue,
		Date:      date,
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("gradeID", grade.ID).
		Int64("studentID", grade.StudentID).
		Int64("subjectID", grade.SubjectID).
		Msg("Grade recorded")
	return grade, nil
}

// UpdateGrade applies a partial update to a grade. Bounds are re-checked on
// the merged values so a partial update can never produce value > maxValue.
func (s *GradeService) UpdateGrade(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateGradeRequest) (*models.Grade, error) {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjects.GetByID(ctx, grade.SubjectID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanManage(ctx, principal, auth.ResourceGrade, subject.DepartmentID) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage grades in this department")
	}

	if req.Value != nil {
		grade.Value = *req.Value
	}
	if req.MaxValue != nil {
		grade.MaxValue = *req.MaxValue
	}
	if req.Date != nil {
		grade.Date = *req.Date
	}
	if err := validateGradeBounds(grade.Value, grade.MaxValue); err != nil {
		return nil, err
	}

	if err := s.grades.Update(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// DeleteGrade removes a grade.
func (s *GradeService) DeleteGrade(ctx context.Context, principal *auth.Principal, id int64) error {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return err
	}

	subject, err := s.subjects.GetByID(ctx, grade.SubjectID)
	if err != nil {
		return err
	}
	if !s.authz.CanManage(ctx, principal, auth.ResourceGrade, subject.DepartmentID) {
		return apperrors.NewUnauthorizedError("you are not allowed to manage grades in this department")
	}

	if err := s.grades.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("gradeID", id).Msg("Grade deleted")
	return nil
}

// GetGrade retrieves a single grade.
func (s *GradeService) GetGrade(ctx context.Context, id int64) (*models.Grade, error) {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if student, err := s.students.GetByID(ctx, grade.StudentID); err == nil {
		grade.Student = student
	}
	if subject, err := s.subjects.GetByID(ctx, grade.SubjectID); err == nil {
		grade.Subject = subject
	}
	return grade, nil
}

// ListGrades retrieves a page of grades, optionally filtered by student
// and/or subject.
func (s *GradeService) ListGrades(ctx context.Context, studentID, subjectID *int64, page, pageSize int) (*dto.GradeListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	grades, total, err := s.grades.List(ctx, studentID, subjectID, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.GradeListResponse{
		Items:          grades,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// validateGradeBounds enforces 0 <= value <= maxValue and maxValue > 0.
func validateGradeBounds(value, maxValue decimal.Decimal) error {
	if value.IsNegative() {
		return apperrors.NewValidationError("grade value cannot be negative")
	}
	if !maxValue.IsPositive() {
		return apperrors.NewValidationError("maximum value must be greater than zero")
	}
	if value.GreaterThan(maxValue) {
		return apperrors.NewValidationError("grade value cannot exceed the maximum value")
	}
	return nil
}
