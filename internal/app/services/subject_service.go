package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// SubjectStore is the persistence surface SubjectService depends on.
type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, departmentID *int64, offset, limit int) ([]*models.Subject, int64, error)
}

// ClassroomGetter resolves a classroom for referential checks.
type ClassroomGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Classroom, error)
}

// SubjectTeacherCounter reports how many teachers teach a subject, for the
// deletion guard.
type SubjectTeacherCounter interface {
	CountBySubject(ctx context.Context, subjectID int64) (int64, error)
}

// SubjectEnrollmentCounter reports how many students are enrolled in a
// subject, for the deletion guard.
type SubjectEnrollmentCounter interface {
	CountBySubject(ctx context.Context, subjectID int64) (int64, error)
}

// SubjectGradeCounter reports how many grades a subject has, for the
// deletion guard.
type SubjectGradeCounter interface {
	CountBySubject(ctx context.Context, subjectID int64) (int64, error)
}

// SubjectService handles subject business logic. Subjects are scoped to
// their department.
type SubjectService struct {
	subjects    SubjectStore
	departments DepartmentGetter
	classrooms  ClassroomGetter
	teachers    SubjectTeacherCounter
	enrollments SubjectEnrollmentCounter
	grades      SubjectGradeCounter
	authz       Authorizer
	logger      zerolog.Logger
}

// DepartmentGetter resolves a department for referential checks.
type DepartmentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(
	subjects SubjectStore,
	departments DepartmentGetter,
	classrooms ClassroomGetter,
	teachers SubjectTeacherCounter,
	enrollments SubjectEnrollmentCounter,
	grades SubjectGradeCounter,
	authz Authorizer,
	logger zerolog.Logger,
) *SubjectService {
	return &SubjectService{
		subjects:    subjects,
		departments: departments,
		classrooms:  classrooms,
		teachers:    teachers,
		enrollments: enrollments,
		grades:      grades,
		authz:       authz,
		logger:      logger,
	}
}

// CreateSubject creates a new subject in a department.
func (s *SubjectService) CreateSubject(ctx context.Context, principal *auth.Principal, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceSubject, req.DepartmentID) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage subjects in this department")
	}

	if len(req.Name) < 3 || len(req.Name) > 200 {
		return nil, apperrors.NewValidationError("subject name must be between 3 and 200 characters")
	}
	if err := validateSubjectCode(req.Code); err != nil {
		return nil, err
	}
	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}
	if _, err := s.classrooms.GetByID(ctx, req.ClassroomID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:         req.Name,
		Code:         req.Code,
		ClassroomID:  req.ClassroomID,
		DepartmentID: req.DepartmentID,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectID", subject.ID).Str("code", subject.Code).Msg("Subject created")
	return subject, nil
}

// UpdateSubject applies a partial update to a subject. Subjects stay in
// their department; moving one is a delete plus re-create.
func (s *SubjectService) UpdateSubject(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.authz.CanManage(ctx, principal, auth.ResourceSubject, subject.DepartmentID) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage subjects in this department")
	}

	if req.Name != nil {
		if len(*req.Name) < 3 || len(*req.Name) > 200 {
			return nil, apperrors.NewValidationError("subject name must be between 3 and 200 characters")
		}
		subject.Name = *req.Name
	}
	if req.Code != nil {
		if err := validateSubjectCode(*req.Code); err != nil {
			return nil, err
		}
		subject.Code = *req.Code
	}
	if req.ClassroomID != nil {
		if _, err := s.classrooms.GetByID(ctx, *req.ClassroomID); err != nil {
			return nil, err
		}
		subject.ClassroomID = *req.ClassroomID
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject. A subject that still has teachers,
// enrollments or grades cannot be removed.
func (s *SubjectService) DeleteSubject(ctx context.Context, principal *auth.Principal, id int64) error {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.authz.CanManage(ctx, principal, auth.ResourceSubject, subject.DepartmentID) {
		return apperrors.NewUnauthorizedError("you are not allowed to manage subjects in this department")
	}

	teacherCount, err := s.teachers.CountBySubject(ctx, id)
	if err != nil {
		return err
	}
	if teacherCount > 0 {
		return apperrors.NewConflictError("subject still has teachers attached")
	}

	enrollmentCount, err := s.enrollments.CountBySubject(ctx, id)
	if err != nil {
		return err
	}
	if enrollmentCount > 0 {
		return apperrors.NewConflictError("subject still has enrolled students")
	}

	gradeCount, err := s.grades.CountBySubject(ctx, id)
	if err != nil {
		return err
	}
	if gradeCount > 0 {
		return apperrors.NewConflictError("subject still has grades attached")
	}

	if err := s.subjects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("subjectID", id).Msg("Subject deleted")
	return nil
}

// GetSubject retrieves a single subject.
func (s *SubjectService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if department, err := s.departments.GetByID(ctx, subject.DepartmentID); err == nil {
		subject.Department = department
	}
	if classroom, err := s.classrooms.GetByID(ctx, subject.ClassroomID); err == nil {
		subject.Classroom = classroom
	}
	return subject, nil
}

// ListSubjects retrieves a page of subjects, optionally filtered by
// department.
func (s *SubjectService) ListSubjects(ctx context.Context, departmentID *int64, page, pageSize int) (*dto.SubjectListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	subjects, total, err := s.subjects.List(ctx, departmentID, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.SubjectListResponse{
		Items:          subjects,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
