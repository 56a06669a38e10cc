package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
	authpkg "github.com/davnat/scolaris/internal/pkg/auth"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// StudentStore is the persistence surface StudentService depends on.
// CreateWithUser must insert the identity and the student record atomically.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, entryYear *int, offset, limit int) ([]*models.Student, int64, error)
}

// StudentService handles student business logic. Students are a global
// resource: only admins may mutate them.
type StudentService struct {
	students StudentStore
	users    UserGetter
	authz    Authorizer
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore, users UserGetter, authz Authorizer, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		users:    users,
		authz:    authz,
		logger:   logger,
	}
}

// CreateStudent creates a new student. When the request asks for identity
// provisioning, the user account and student record are written in one
// transaction; otherwise an existing user ID must be supplied.
func (s *StudentService) CreateStudent(ctx context.Context, principal *auth.Principal, req *dto.CreateStudentRequest) (*models.Student, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceStudent, 0) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage students")
	}

	if err := validateName(req.LastName, "last name"); err != nil {
		return nil, err
	}
	if err := validateName(req.FirstName, "first name"); err != nil {
		return nil, err
	}
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validateEntryYear(req.EntryYear); err != nil {
		return nil, err
	}

	student := &models.Student{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Phone:     req.Phone,
		Email:     req.Email,
		EntryYear: req.EntryYear,
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
			Role:     models.RoleStudent,
		}
		if err := s.students.CreateWithUser(ctx, user, student); err != nil {
			return nil, err
		}
	} else {
		if req.UserID == nil {
			return nil, apperrors.NewValidationError("userId is required when no account is being created")
		}
		if _, err := s.users.GetByID(ctx, *req.UserID); err != nil {
			return nil, err
		}
		student.UserID = *req.UserID
		if err := s.students.Create(ctx, student); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Int64("studentID", student.ID).
		Bool("userCreated", req.CreateUser).
		Msg("Student created")
	return student, nil
}

// UpdateStudent applies a partial update to a student.
func (s *StudentService) UpdateStudent(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceStudent, 0) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage students")
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LastName != nil {
		if err := validateName(*req.LastName, "last name"); err != nil {
			return nil, err
		}
		student.LastName = *req.LastName
	}
	if req.FirstName != nil {
		if err := validateName(*req.FirstName, "first name"); err != nil {
			return nil, err
		}
		student.FirstName = *req.FirstName
	}
	if req.Phone != nil {
		if err := validatePhone(*req.Phone); err != nil {
			return nil, err
		}
		student.Phone = *req.Phone
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return nil, err
		}
		student.Email = *req.Email
	}
	if req.EntryYear != nil {
		if err := validateEntryYear(*req.EntryYear); err != nil {
			return nil, err
		}
		student.EntryYear = *req.EntryYear
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student.
func (s *StudentService) DeleteStudent(ctx context.Context, principal *auth.Principal, id int64) error {
	if !s.authz.CanManage(ctx, principal, auth.ResourceStudent, 0) {
		return apperrors.NewUnauthorizedError("you are not allowed to manage students")
	}

	if _, err := s.students.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

// GetStudent retrieves a single student.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// ListStudents retrieves a page of students, optionally filtered by entry
// year.
func (s *StudentService) ListStudents(ctx context.Context, entryYear *int, page, pageSize int) (*dto.StudentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	students, total, err := s.students.List(ctx, entryYear, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.StudentListResponse{
		Items:          students,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
