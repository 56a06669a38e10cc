package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/app/services"
	"github.com/davnat/scolaris/internal/middleware"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// SubjectController handles subject endpoints.
type SubjectController struct {
	subjectService *services.SubjectService
}

// NewSubjectController creates a new SubjectController.
func NewSubjectController(subjectService *services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// CreateSubject handles POST /subjects.
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateSubjectRequest
	if !bindJSON(ctx, &req) {
		return
	}

	subject, err := c.subjectService.CreateSubject(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, subject)
}

// GetSubject handles GET /subjects/:id.
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	subject, err := c.subjectService.GetSubject(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, subject)
}

// ListSubjects handles GET /subjects with an optional departmentId filter.
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	departmentID, ok := parseOptionalInt64Query(ctx, "departmentId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.subjectService.ListSubjects(ctx, departmentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, list)
}

// UpdateSubject handles PUT /subjects/:id.
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if !bindJSON(ctx, &req) {
		return
	}

	subject, err := c.subjectService.UpdateSubject(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, subject)
}

// DeleteSubject handles DELETE /subjects/:id.
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondDeleted(ctx, "Subject deleted successfully")
}
