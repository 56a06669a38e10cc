package dto

import "github.com/davnat/scolaris/internal/app/models"

// CreateCollegeRequest carries the payload for college creation.
type CreateCollegeRequest struct {
	Name       string  `json:"name" binding:"required,min=3,max=100"`
	WebsiteURL *string `json:"websiteUrl" binding:"omitempty,url"`
}

// UpdateCollegeRequest carries a partial college update. Nil fields are
// left untouched.
type UpdateCollegeRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=3,max=100"`
	WebsiteURL *string `json:"websiteUrl" binding:"omitempty,url"`
}

// CollegeListResponse is the paged college listing.
type CollegeListResponse struct {
	Items []*models.College `json:"items"`
	PaginationInfo
}
