package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

// Principal is the authenticated actor performing an operation. It is
// passed explicitly into every service call; nothing in this package reads
// ambient request state.
type Principal struct {
	UserID int64
	Role   models.RoleType
}

// ResourceKind is the closed set of resources the engine decides on.
type ResourceKind int

const (
	ResourceCollege ResourceKind = iota
	ResourceDepartment
	ResourceClassroom
	ResourceSubject
	ResourceTeacher
	ResourceStudent
	ResourceEnrollment
	ResourceGrade
)

// TeacherLookup resolves the teacher record linked to a user account.
type TeacherLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
}

// DepartmentLookup resolves the department a teacher heads.
type DepartmentLookup interface {
	GetByHeadTeacherID(ctx context.Context, teacherID int64) (*models.Department, error)
}

// AuthorizationService decides whether a principal may mutate a resource.
// Decisions are deny-by-default: a failed lookup is a denial, never an error.
type AuthorizationService struct {
	teachers    TeacherLookup
	departments DepartmentLookup
	logger      zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService(teachers TeacherLookup, departments DepartmentLookup, logger zerolog.Logger) *AuthorizationService {
	return &AuthorizationService{
		teachers:    teachers,
		departments: departments,
		logger:      logger,
	}
}

// CanManage reports whether the principal may mutate the given resource
// kind. departmentID is the scope for department-scoped resources
// (Department update, Subject, Teacher, Grade) and ignored for global ones.
func (s *AuthorizationService) CanManage(ctx context.Context, principal *Principal, kind ResourceKind, departmentID int64) bool {
	if principal == nil {
		return false
	}

	switch principal.Role {
	case models.RoleAdmin:
		return true

	case models.RoleDepartmentHead:
		switch kind {
		case ResourceDepartment, ResourceSubject, ResourceTeacher, ResourceGrade:
			return s.headsDepartment(ctx, principal.UserID, departmentID)
		case ResourceCollege, ResourceClassroom, ResourceStudent, ResourceEnrollment:
			return false
		}
		return false

	case models.RoleTeacher:
		// Teachers only mutate grades, and only inside their own department.
		if kind != ResourceGrade {
			return false
		}
		return s.belongsToDepartment(ctx, principal.UserID, departmentID)

	case models.RoleStudent:
		return false
	}

	return false
}

// HeadedDepartmentID returns the department the principal heads, when the
// principal is a department head with a valid headship.
func (s *AuthorizationService) HeadedDepartmentID(ctx context.Context, principal *Principal) (int64, bool) {
	if principal == nil || principal.Role != models.RoleDepartmentHead {
		return 0, false
	}

	teacher, err := s.teachers.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return 0, false
	}

	department, err := s.departments.GetByHeadTeacherID(ctx, teacher.ID)
	if err != nil {
		return 0, false
	}

	return department.ID, true
}

// headsDepartment resolves principal -> teacher -> headed department and
// compares it to the requested scope.
func (s *AuthorizationService) headsDepartment(ctx context.Context, userID, departmentID int64) bool {
	teacher, err := s.teachers.GetByUserID(ctx, userID)
	if err != nil {
		s.logLookupFailure(err, userID)
		return false
	}

	department, err := s.departments.GetByHeadTeacherID(ctx, teacher.ID)
	if err != nil {
		s.logLookupFailure(err, userID)
		return false
	}

	return department.ID == departmentID
}

// belongsToDepartment checks the principal's teacher record against the
// requested scope.
func (s *AuthorizationService) belongsToDepartment(ctx context.Context, userID, departmentID int64) bool {
	teacher, err := s.teachers.GetByUserID(ctx, userID)
	if err != nil {
		s.logLookupFailure(err, userID)
		return false
	}
	return teacher.DepartmentID == departmentID
}

func (s *AuthorizationService) logLookupFailure(err error, userID int64) {
	// Missing records are an expected denial path; anything else is worth a log line.
	if errors.Is(err, apperrors.ErrTeacherNotFound) || errors.Is(err, apperrors.ErrDepartmentNotFound) {
		return
	}
	s.logger.Error().Err(err).Int64("userID", userID).Msg("authorization lookup failed, denying")
}
