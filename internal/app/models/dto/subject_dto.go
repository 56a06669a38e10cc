package dto

import "github.com/davnat/scolaris/internal/app/models"

// CreateSubjectRequest carries the payload for subject creation.
type CreateSubjectRequest struct {
	Name         string `json:"name" binding:"required,min=3,max=200"`
	Code         string `json:"code" binding:"required,min=2,max=20"`
	ClassroomID  int64  `json:"classroomId" binding:"required"`
	DepartmentID int64  `json:"departmentId" binding:"required"`
}

// UpdateSubjectRequest carries a partial subject update.
type UpdateSubjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=200"`
	Code        *string `json:"code" binding:"omitempty,min=2,max=20"`
	ClassroomID *int64  `json:"classroomId"`
}

// SubjectListResponse is the paged subject listing.
type SubjectListResponse struct {
	Items []*models.Subject `json:"items"`
	PaginationInfo
}
