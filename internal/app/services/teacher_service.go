package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
	authpkg "github.com/davnat/scolaris/internal/pkg/auth"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// TeacherStore is the persistence surface TeacherService depends on.
// CreateWithUser must insert the identity and the teacher record atomically.
type TeacherStore interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, departmentID *int64, offset, limit int) ([]*models.Teacher, int64, error)
}

// UserGetter resolves an identity for linking an existing account.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// SubjectGetter resolves a subject for referential checks.
type SubjectGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// HeadshipLookup resolves the department a teacher heads, for the deletion
// guard.
type HeadshipLookup interface {
	GetByHeadTeacherID(ctx context.Context, teacherID int64) (*models.Department, error)
}

// TeacherService handles teacher business logic. Teachers are scoped to
// their department.
type TeacherService struct {
	teachers    TeacherStore
	users       UserGetter
	departments DepartmentGetter
	subjects    SubjectGetter
	headships   HeadshipLookup
	authz       Authorizer
	logger      zerolog.Logger
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(
	teachers TeacherStore,
	users UserGetter,
	departments DepartmentGetter,
	subjects SubjectGetter,
	headships HeadshipLookup,
	authz Authorizer,
	logger zerolog.Logger,
) *TeacherService {
	return &TeacherService{
		teachers:    teachers,
		users:       users,
		departments: departments,
		subjects:    subjects,
		headships:   headships,
		authz:       authz,
		logger:      logger,
	}
}

// CreateTeacher creates a new teacher. When the request asks for identity
// provisioning, the user account and teacher record are written in one
// transaction; otherwise an existing user ID must be supplied.
func (s *TeacherService) CreateTeacher(ctx context.Context, principal *auth.Principal, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceTeacher, req.DepartmentID) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage teachers in this department")
	}

	if err := s.validateTeacherFields(req.LastName, req.FirstName, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := validateFunctionStart(req.FunctionStart); err != nil {
		return nil, err
	}
	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}
	if _, err := s.subjects.GetByID(ctx, req.SubjectID); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		LastName:      req.LastName,
		FirstName:     req.FirstName,
		Phone:         req.Phone,
		Email:         req.Email,
		FunctionStart: req.FunctionStart,
		PayIndex:      req.PayIndex,
		DepartmentID:  req.DepartmentID,
		SubjectID:     req.SubjectID,
	}

	if req.CreateUser {
		if err := validatePassword(req.Password); err != nil {
			return nil, err
		}
		hash, err := authpkg.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user := &models.User{
			Email:    req.Email,
			Password: hash,
			Name:     req.FirstName + " " + req.LastName,
			Role:     models.RoleTeacher,
		}
		if err := s.teachers.CreateWithUser(ctx, user, teacher); err != nil {
			return nil, err
		}
	} else {
		if req.UserID == nil {
			return nil, apperrors.NewValidationError("userId is required when no account is being created")
		}
		if _, err := s.users.GetByID(ctx, *req.UserID); err != nil {
			return nil, err
		}
		teacher.UserID = *req.UserID
		if err := s.teachers.Create(ctx, teacher); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Int64("teacherID", teacher.ID).
		Int64("departmentID", teacher.DepartmentID).
		Bool("userCreated", req.CreateUser).
		Msg("Teacher created")
	return teacher, nil
}

// UpdateTeacher applies a partial update to a teacher. Authorization is
// checked against the teacher's current department.
func (s *TeacherService) UpdateTeacher(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.authz.CanManage(ctx, principal, auth.ResourceTeacher, teacher.DepartmentID) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage teachers in this department")
	}

	if req.LastName != nil {
		if err := validateName(*req.LastName, "last name"); err != nil {
			return nil, err
		}
		teacher.LastName = *req.LastName
	}
	if req.FirstName != nil {
		if err := validateName(*req.FirstName, "first name"); err != nil {
			return nil, err
		}
		teacher.FirstName = *req.FirstName
	}
	if req.Phone != nil {
		if err := validatePhone(*req.Phone); err != nil {
			return nil, err
		}
		teacher.Phone = *req.Phone
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return nil, err
		}
		teacher.Email = *req.Email
	}
	if req.FunctionStart != nil {
		if err := validateFunctionStart(*req.FunctionStart); err != nil {
			return nil, err
		}
		teacher.FunctionStart = *req.FunctionStart
	}
	if req.PayIndex != nil {
		teacher.PayIndex = *req.PayIndex
	}
	if req.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		teacher.DepartmentID = *req.DepartmentID
	}
	if req.SubjectID != nil {
		if _, err := s.subjects.GetByID(ctx, *req.SubjectID); err != nil {
			return nil, err
		}
		teacher.SubjectID = *req.SubjectID
	}

	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// DeleteTeacher removes a teacher. A teacher who heads a department cannot
// be removed until the headship is reassigned.
func (s *TeacherService) DeleteTeacher(ctx context.Context, principal *auth.Principal, id int64) error {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.authz.CanManage(ctx, principal, auth.ResourceTeacher, teacher.DepartmentID) {
		return apperrors.NewUnauthorizedError("you are not allowed to manage teachers in this department")
	}

	if _, err := s.headships.GetByHeadTeacherID(ctx, id); err == nil {
		return apperrors.NewConflictError("teacher heads a department and cannot be deleted")
	} else if !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		return err
	}

	if err := s.teachers.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("teacherID", id).Msg("Teacher deleted")
	return nil
}

// GetTeacher retrieves a single teacher.
func (s *TeacherService) GetTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if department, err := s.departments.GetByID(ctx, teacher.DepartmentID); err == nil {
		teacher.Department = department
	}
	if subject, err := s.subjects.GetByID(ctx, teacher.SubjectID); err == nil {
		teacher.Subject = subject
	}
	return teacher, nil
}

// ListTeachers retrieves a page of teachers, optionally filtered by
// department.
func (s *TeacherService) ListTeachers(ctx context.Context, departmentID *int64, page, pageSize int) (*dto.TeacherListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	teachers, total, err := s.teachers.List(ctx, departmentID, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherListResponse{
		Items:          teachers,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

func (s *TeacherService) validateTeacherFields(lastName, firstName, phone, email string) error {
	if err := validateName(lastName, "last name"); err != nil {
		return err
	}
	if err := validateName(firstName, "first name"); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}
	return validateEmail(email)
}
