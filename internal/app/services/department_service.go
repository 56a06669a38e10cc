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

// DepartmentStore is the persistence surface DepartmentService depends on.
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, collegeID *int64, offset, limit int) ([]*models.Department, int64, error)
}

// CollegeGetter resolves a college for referential checks.
type CollegeGetter interface {
	GetByID(ctx context.Context, id int64) (*models.College, error)
}

// DepartmentTeacherStore resolves teachers and counts department membership,
// for head assignment and the deletion guard.
type DepartmentTeacherStore interface {
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	CountByDepartment(ctx context.Context, departmentID int64) (int64, error)
}

// DepartmentSubjectCounter reports how many subjects belong to a department,
// for the deletion guard.
type DepartmentSubjectCounter interface {
	CountByDepartment(ctx context.Context, departmentID int64) (int64, error)
}

// DepartmentService handles department business logic. Creation is global
// (admin only); updates are scoped to the department being changed.
type DepartmentService struct {
	departments DepartmentStore
	colleges    CollegeGetter
	teachers    DepartmentTeacherStore
	subjects    DepartmentSubjectCounter
	authz       Authorizer
	logger      zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(
	departments DepartmentStore,
	colleges CollegeGetter,
	teachers DepartmentTeacherStore,
	subjects DepartmentSubjectCounter,
	authz Authorizer,
	logger zerolog.Logger,
) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		colleges:    colleges,
		teachers:    teachers,
		subjects:    subjects,
		authz:       authz,
		logger:      logger,
	}
}

// CreateDepartment creates a new department. There is no department scope
// yet, so only admins pass the check.
func (s *DepartmentService) CreateDepartment(ctx context.Context, principal *auth.Principal, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceDepartment, 0) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to create departments")
	}

	if err := validateName(req.Name, "department name"); err != nil {
		return nil, err
	}
	if _, err := s.colleges.GetByID(ctx, req.CollegeID); err != nil {
		return nil, err
	}
	if req.HeadTeacherID != nil {
		if _, err := s.teachers.GetByID(ctx, *req.HeadTeacherID); err != nil {
			return nil, err
		}
	}

	department := &models.Department{
		Name:          req.Name,
		CollegeID:     req.CollegeID,
		HeadTeacherID: req.HeadTeacherID,
	}
	if err := s.departments.Create(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("departmentID", department.ID).Str("name", department.Name).Msg("Department created")
	return department, nil
}

// UpdateDepartment applies a partial update to a department. The scope of
// the authorization check is the department itself.
func (s *DepartmentService) UpdateDepartment(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error) {
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.authz.CanManage(ctx, principal, auth.ResourceDepartment, department.ID) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage this department")
	}

	if req.Name != nil {
		if err := validateName(*req.Name, "department name"); err != nil {
			return nil, err
		}
		department.Name = *req.Name
	}
	if req.CollegeID != nil {
		if _, err := s.colleges.GetByID(ctx, *req.CollegeID); err != nil {
			return nil, err
		}
		department.CollegeID = *req.CollegeID
	}
	if req.HeadTeacherID != nil {
		if err := s.checkHeadCandidate(ctx, department.ID, *req.HeadTeacherID); err != nil {
			return nil, err
		}
		department.HeadTeacherID = req.HeadTeacherID
	}

	if err := s.departments.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// AssignHeadTeacher designates a teacher as head of the department. The
// teacher must already belong to that department.
func (s *DepartmentService) AssignHeadTeacher(ctx context.Context, principal *auth.Principal, departmentID, teacherID int64) (*models.Department, error) {
	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	if !s.authz.CanManage(ctx, principal, auth.ResourceDepartment, department.ID) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage this department")
	}

	if err := s.checkHeadCandidate(ctx, departmentID, teacherID); err != nil {
		return nil, err
	}

	department.HeadTeacherID = &teacherID
	if err := s.departments.Update(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("departmentID", departmentID).
		Int64("teacherID", teacherID).
		Msg("Department head assigned")
	return department, nil
}

// DeleteDepartment removes a department. A department that still has
// teachers or subjects cannot be removed.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, principal *auth.Principal, id int64) error {
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.authz.CanManage(ctx, principal, auth.ResourceDepartment, department.ID) {
		return apperrors.NewUnauthorizedError("you are not allowed to manage this department")
	}

	teacherCount, err := s.teachers.CountByDepartment(ctx, id)
	if err != nil {
		return err
	}
	if teacherCount > 0 {
		return apperrors.NewConflictError("department still has teachers attached")
	}

	subjectCount, err := s.subjects.CountByDepartment(ctx, id)
	if err != nil {
		return err
	}
	if subjectCount > 0 {
		return apperrors.NewConflictError("department still has subjects attached")
	}

	if err := s.departments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("departmentID", id).Msg("Department deleted")
	return nil
}

// GetDepartment retrieves a single department.
func (s *DepartmentService) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if college, err := s.colleges.GetByID(ctx, department.CollegeID); err == nil {
		department.College = college
	}
	if department.HeadTeacherID != nil {
		if teacher, err := s.teachers.GetByID(ctx, *department.HeadTeacherID); err == nil {
			department.HeadTeacher = teacher
		}
	}
	return department, nil
}

// ListDepartments retrieves a page of departments, optionally filtered by
// college.
func (s *DepartmentService) ListDepartments(ctx context.Context, collegeID *int64, page, pageSize int) (*dto.DepartmentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	departments, total, err := s.departments.List(ctx, collegeID, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Items:          departments,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// checkHeadCandidate verifies the prospective head exists and teaches in the
// target department.
func (s *DepartmentService) checkHeadCandidate(ctx context.Context, departmentID, teacherID int64) error {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return err
	}
	if teacher.DepartmentID != departmentID {
		return apperrors.NewConflictError("head teacher must belong to the department")
	}
	return nil
}
