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

// ClassroomStore is the persistence surface ClassroomService depends on.
type ClassroomStore interface {
	Create(ctx context.Context, classroom *models.Classroom) error
	GetByID(ctx context.Context, id int64) (*models.Classroom, error)
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*models.Classroom, int64, error)
}

// ClassroomSubjectCounter reports how many subjects are taught in a
// classroom, for the deletion guard.
type ClassroomSubjectCounter interface {
	CountByClassroom(ctx context.Context, classroomID int64) (int64, error)
}

// ClassroomService handles classroom business logic. Classrooms are a
// global resource: only admins may mutate them.
type ClassroomService struct {
	classrooms ClassroomStore
	subjects   ClassroomSubjectCounter
	authz      Authorizer
	logger     zerolog.Logger
}

// NewClassroomService creates a new ClassroomService.
func NewClassroomService(classrooms ClassroomStore, subjects ClassroomSubjectCounter, authz Authorizer, logger zerolog.Logger) *ClassroomService {
	return &ClassroomService{
		classrooms: classrooms,
		subjects:   subjects,
		authz:      authz,
		logger:     logger,
	}
}

// CreateClassroom creates a new classroom.
func (s *ClassroomService) CreateClassroom(ctx context.Context, principal *auth.Principal, req *dto.CreateClassroomRequest) (*models.Classroom, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceClassroom, 0) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage classrooms")
	}

	if req.Name == "" {
		return nil, apperrors.NewValidationError("classroom name is required")
	}
	if err := validateCapacity(req.Capacity); err != nil {
		return nil, err
	}

	classroom := &models.Classroom{
		Name:     req.Name,
		Capacity: req.Capacity,
		Location: req.Location,
	}
	if err := s.classrooms.Create(ctx, classroom); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("classroomID", classroom.ID).Str("name", classroom.Name).Msg("Classroom created")
	return classroom, nil
}

// UpdateClassroom applies a partial update to a classroom.
func (s *ClassroomService) UpdateClassroom(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateClassroomRequest) (*models.Classroom, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceClassroom, 0) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage classrooms")
	}

	classroom, err := s.classrooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperrors.NewValidationError("classroom name is required")
		}
		classroom.Name = *req.Name
	}
	if req.Capacity != nil {
		if err := validateCapacity(*req.Capacity); err != nil {
			return nil, err
		}
		classroom.Capacity = *req.Capacity
	}
	if req.Location != nil {
		classroom.Location = req.Location
	}

	if err := s.classrooms.Update(ctx, classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

// DeleteClassroom removes a classroom. A classroom still hosting subjects
// cannot be removed.
func (s *ClassroomService) DeleteClassroom(ctx context.Context, principal *auth.Principal, id int64) error {
	if !s.authz.CanManage(ctx, principal, auth.ResourceClassroom, 0) {
		return apperrors.NewUnauthorizedError("you are not allowed to manage classrooms")
	}

	if _, err := s.classrooms.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.subjects.CountByClassroom(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("classroom still has subjects attached")
	}

	if err := s.classrooms.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("classroomID", id).Msg("Classroom deleted")
	return nil
}

// GetClassroom retrieves a single classroom.
func (s *ClassroomService) GetClassroom(ctx context.Context, id int64) (*models.Classroom, error) {
	return s.classrooms.GetByID(ctx, id)
}

// ListClassrooms retrieves a page of classrooms.
func (s *ClassroomService) ListClassrooms(ctx context.Context, page, pageSize int) (*dto.ClassroomListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	classrooms, total, err := s.classrooms.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.ClassroomListResponse{
		Items:          classrooms,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
