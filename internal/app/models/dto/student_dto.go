package dto

import "github.com/davnat/scolaris/internal/app/models"

// CreateStudentRequest carries the payload for student creation. When
// CreateUser is set, Password must be supplied and an identity with role
// STUDENT is provisioned together with the student record.
type CreateStudentRequest struct {
	LastName   string `json:"lastName" binding:"required,min=2,max=100"`
	FirstName  string `json:"firstName" binding:"required,min=2,max=100"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	EntryYear  int    `json:"entryYear" binding:"required"`
	UserID     *int64 `json:"userId"`
	CreateUser bool   `json:"createUser"`
	Password   string `json:"password"`
}

// UpdateStudentRequest carries a partial student update.
type UpdateStudentRequest struct {
	LastName  *string `json:"lastName" binding:"omitempty,min=2,max=100"`
	FirstName *string `json:"firstName" binding:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
	EntryYear *int    `json:"entryYear"`
}

// EnrollmentRequest links a student to a subject.
type EnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	SubjectID int64 `json:"subjectId" binding:"required"`
}

// StudentListResponse is the paged student listing.
type StudentListResponse struct {
	Items []*models.Student `json:"items"`
	PaginationInfo
}
