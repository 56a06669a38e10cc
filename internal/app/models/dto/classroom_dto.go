package dto

import "github.com/davnat/scolaris/internal/app/models"

// CreateClassroomRequest carries the payload for classroom creation.
type CreateClassroomRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=50"`
	Capacity int     `json:"capacity" binding:"required"`
	Location *string `json:"location" binding:"omitempty,max=200"`
}

// UpdateClassroomRequest carries a partial classroom update.
type UpdateClassroomRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=50"`
	Capacity *int    `json:"capacity"`
	Location *string `json:"location" binding:"omitempty,max=200"`
}

// ClassroomListResponse is the paged classroom listing.
type ClassroomListResponse struct {
	Items []*models.Classroom `json:"items"`
	PaginationInfo
}
