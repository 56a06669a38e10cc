package dto

import (
	"time"

	"github.com/davnat/scolaris/internal/app/models"
)

// CreateTeacherRequest carries the payload for teacher creation. When
// CreateUser is set, Password must be supplied and an identity with role
// TEACHER is provisioned together with the teacher record.
type CreateTeacherRequest struct {
	LastName      string    `json:"lastName" binding:"required,min=2,max=100"`
	FirstName     string    `json:"firstName" binding:"required,min=2,max=100"`
	Phone         string    `json:"phone" binding:"required"`
	Email         string    `json:"email" binding:"required,email"`
	FunctionStart time.Time `json:"functionStart" binding:"required"`
	PayIndex      string    `json:"payIndex" binding:"required,min=1,max=20"`
	DepartmentID  int64     `json:"departmentId" binding:"required"`
	SubjectID     int64     `json:"subjectId" binding:"required"`
	UserID        *int64    `json:"userId"`
	CreateUser    bool      `json:"createUser"`
	Password      string    `json:"password"`
}

// UpdateTeacherRequest carries a partial teacher update.
type UpdateTeacherRequest struct {
	LastName      *string    `json:"lastName" binding:"omitempty,min=2,max=100"`
	FirstName     *string    `json:"firstName" binding:"omitempty,min=2,max=100"`
	Phone         *string    `json:"phone"`
	Email         *string    `json:"email" binding:"omitempty,email"`
	FunctionStart *time.Time `json:"functionStart"`
	PayIndex      *string    `json:"payIndex" binding:"omitempty,min=1,max=20"`
	DepartmentID  *int64     `json:"departmentId"`
	SubjectID     *int64     `json:"subjectId"`
}

// TeacherListResponse is the paged teacher listing.
type TeacherListResponse struct {
	Items []*models.Teacher `json:"items"`
	PaginationInfo
}
