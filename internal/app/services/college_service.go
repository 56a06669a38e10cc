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

// CollegeStore is the persistence surface CollegeService depends on.
type CollegeStore interface {
	Create(ctx context.Context, college *models.College) error
	GetByID(ctx context.Context, id int64) (*models.College, error)
	Update(ctx context.Context, college *models.College) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*models.College, int64, error)
}

// CollegeDepartmentCounter reports how many departments belong to a college,
// for the deletion guard.
type CollegeDepartmentCounter interface {
	CountByCollege(ctx context.Context, collegeID int64) (int64, error)
}

// CollegeService handles college business logic. Colleges are a global
// resource: only admins may mutate them.
type CollegeService struct {
	colleges    CollegeStore
	departments CollegeDepartmentCounter
	authz       Authorizer
	logger      zerolog.Logger
}

// NewCollegeService creates a new CollegeService.
func NewCollegeService(colleges CollegeStore, departments CollegeDepartmentCounter, authz Authorizer, logger zerolog.Logger) *CollegeService {
	return &CollegeService{
		colleges:    colleges,
		departments: departments,
		authz:       authz,
		logger:      logger,
	}
}

// CreateCollege creates a new college.
func (s *CollegeService) CreateCollege(ctx context.Context, principal *auth.Principal, req *dto.CreateCollegeRequest) (*models.College, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceCollege, 0) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage colleges")
	}

	if len(req.Name) < 3 || len(req.Name) > 100 {
		return nil, apperrors.NewValidationError("college name must be between 3 and 100 characters")
	}

	college := &models.College{
		Name:       req.Name,
		WebsiteURL: req.WebsiteURL,
	}
	if err := s.colleges.Create(ctx, college); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("collegeID", college.ID).Str("name", college.Name).Msg("College created")
	return college, nil
}

// UpdateCollege applies a partial update to a college.
func (s *CollegeService) UpdateCollege(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateCollegeRequest) (*models.College, error) {
	if !s.authz.CanManage(ctx, principal, auth.ResourceCollege, 0) {
		return nil, apperrors.NewUnauthorizedError("you are not allowed to manage colleges")
	}

	college, err := s.colleges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if len(*req.Name) < 3 || len(*req.Name) > 100 {
			return nil, apperrors.NewValidationError("college name must be between 3 and 100 characters")
		}
		college.Name = *req.Name
	}
	if req.WebsiteURL != nil {
		college.WebsiteURL = req.WebsiteURL
	}

	if err := s.colleges.Update(ctx, college); err != nil {
		return nil, err
	}
	return college, nil
}

// DeleteCollege removes a college. A college that still has departments
// cannot be removed.
func (s *CollegeService) DeleteCollege(ctx context.Context, principal *auth.Principal, id int64) error {
	if !s.authz.CanManage(ctx, principal, auth.ResourceCollege, 0) {
		return apperrors.NewUnauthorizedError("you are not allowed to manage colleges")
	}

	if _, err := s.colleges.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.departments.CountByCollege(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("college still has departments attached")
	}

	if err := s.colleges.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("collegeID", id).Msg("College deleted")
	return nil
}

// GetCollege retrieves a single college.
func (s *CollegeService) GetCollege(ctx context.Context, id int64) (*models.College, error) {
	return s.colleges.GetByID(ctx, id)
}

// ListColleges retrieves a page of colleges.
func (s *CollegeService) ListColleges(ctx context.Context, page, pageSize int) (*dto.CollegeListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	colleges, total, err := s.colleges.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.CollegeListResponse{
		Items:          colleges,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
