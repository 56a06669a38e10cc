package dto

import "github.com/davnat/scolaris/internal/app/models"

// CreateDepartmentRequest carries the payload for department creation.
type CreateDepartmentRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	CollegeID     int64  `json:"collegeId" binding:"required"`
	HeadTeacherID *int64 `json:"headTeacherId"`
}

// UpdateDepartmentRequest carries a partial department update.
type UpdateDepartmentRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=100"`
	CollegeID     *int64  `json:"collegeId"`
	HeadTeacherID *int64  `json:"headTeacherId"`
}

// AssignHeadTeacherRequest designates a department head.
type AssignHeadTeacherRequest struct {
	TeacherID int64 `json:"teacherId" binding:"required"`
}

// DepartmentListResponse is the paged department listing.
type DepartmentListResponse struct {
	Items []*models.Department `json:"items"`
	PaginationInfo
}
