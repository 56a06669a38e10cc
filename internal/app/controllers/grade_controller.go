package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/app/services"
	"github.com/davnat/scolaris/internal/middleware"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// GradeController handles grade endpoints.
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController.
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// CreateGrade handles POST /grades.
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateGradeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	grade, err := c.gradeService.CreateGrade(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, grade)
}

// GetGrade handles GET /grades/:id.
func (c *GradeController) GetGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	grade, err := c.gradeService.GetGrade(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, grade)
}

// ListGrades handles GET /grades with optional studentId and subjectId filters.
func (c *GradeController) ListGrades(ctx *gin.Context) {
	studentID, ok := parseOptionalInt64Query(ctx, "studentId")
	if !ok {
		return
	}
	subjectID, ok := parseOptionalInt64Query(ctx, "subjectId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.gradeService.ListGrades(ctx, studentID, subjectID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, list)
}

// UpdateGrade handles PUT /grades/:id.
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	grade, err := c.gradeService.UpdateGrade(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, grade)
}

// DeleteGrade handles DELETE /grades/:id.
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.gradeService.DeleteGrade(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondDeleted(ctx, "Grade deleted successfully")
}
