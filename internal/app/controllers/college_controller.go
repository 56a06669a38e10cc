package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/app/services"
	"github.com/davnat/scolaris/internal/middleware"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// CollegeController handles college endpoints.
type CollegeController struct {
	collegeService *services.CollegeService
}

// NewCollegeController creates a new CollegeController.
func NewCollegeController(collegeService *services.CollegeService) *CollegeController {
	return &CollegeController{collegeService: collegeService}
}

// CreateCollege handles POST /colleges.
func (c *CollegeController) CreateCollege(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateCollegeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	college, err := c.collegeService.CreateCollege(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, college)
}

// GetCollege handles GET /colleges/:id.
func (c *CollegeController) GetCollege(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	college, err := c.collegeService.GetCollege(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, college)
}

// ListColleges handles GET /colleges.
func (c *CollegeController) ListColleges(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.collegeService.ListColleges(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, list)
}

// UpdateCollege handles PUT /colleges/:id.
func (c *CollegeController) UpdateCollege(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCollegeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	college, err := c.collegeService.UpdateCollege(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, college)
}

// DeleteCollege handles DELETE /colleges/:id.
func (c *CollegeController) DeleteCollege(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.collegeService.DeleteCollege(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondDeleted(ctx, "College deleted successfully")
}
