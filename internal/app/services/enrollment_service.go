package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

// EnrollmentStore is the persistence surface EnrollmentService depends on.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	DeleteByPair(ctx context.Context, studentID, subjectID int64) error
	GetByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	GetBySubject(ctx context.Context, subjectID int64) ([]*models.Enrollment, error)
}

// StudentGetter resolves a student for referential checks.
type StudentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// PairGradeCounter reports how many grades a (student, subject) pair has,
// for the unenrollment guard.
type PairGradeCounter interface {
	CountByPair(ctx context.Context, studentID, subjectID int64) (int64, error)
}

// EnrollmentService links students to subjects. Enrollments are a global
// resource: only admins may mutate them.
type EnrollmentService struct {
	enrollments EnrollmentStore
	students    StudentGetter
	subjects    SubjectGetter
	grades      PairGradeCounter
	authz       Authorizer
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	enrollments EnrollmentStore,
	students StudentGetter,
	subjects SubjectGetter,
	grades PairGradeCounter,
	authz Authorizer,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		students:    students,
		subjects:    subjects,
		grades:      grades,
		authz:       authz,
		logger:      logger,
	}
}

// Enroll links a student to a subject. Enrolling twice in the same subject
// is a conflict.
func (s *EnrollmentService) Enroll(ctx context.Context, principal *auth.Principal, studentID, subjectID int64) (*models.Enrollment, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceEnrollment, 0) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage enrollments")
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		SubjectID: subjectID,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("subjectID", subjectID).
		Msg("Student enrolled")
	return enrollment, nil
}

// Unenroll removes the link between a student and a subject. A pair that
// already has grades cannot be unenrolled.
func (s *EnrollmentService) Unenroll(ctx context.Context, principal *auth.Principal, studentID, subjectID int64) error {
	if !s.authz.CanManage(ctx, principal, auth.ResourceEnrollment, 0) {
		return apperrors.NewUnauthorizedError("you are not allowed to manage enrollments")
	}

	count, err := s.grades.CountByPair(ctx, studentID, subjectID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("student has grades in this subject and cannot be unenrolled")
	}

	if err := s.enrollments.DeleteByPair(ctx, studentID, subjectID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("subjectID", subjectID).
		Msg("Student unenrolled")
	return nil
}

// ListByStudent retrieves the enrollments of one student.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.enrollments.GetByStudent(ctx, studentID)
}

// ListBySubject retrieves the enrollments of one subject.
func (s *EnrollmentService) ListBySubject(ctx context.Context, subjectID int64) ([]*models.Enrollment, error) {
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	return s.enrollments.GetBySubject(ctx, subjectID)
}
