package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/app/services"
	"github.com/davnat/scolaris/internal/middleware"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// DepartmentController handles department endpoints.
type DepartmentController struct {
	departmentService *services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController.
func NewDepartmentController(departmentService *services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

// CreateDepartment handles POST /departments.
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateDepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	department, err := c.departmentService.CreateDepartment(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, department)
}

// GetDepartment handles GET /departments/:id.
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	department, err := c.departmentService.GetDepartment(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, department)
}

// ListDepartments handles GET /departments with an optional collegeId filter.
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	collegeID, ok := parseOptionalInt64Query(ctx, "collegeId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.departmentService.ListDepartments(ctx, collegeID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, list)
}

// UpdateDepartment handles PUT /departments/:id.
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	department, err := c.departmentService.UpdateDepartment(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, department)
}

// AssignHeadTeacher handles PUT /departments/:id/head.
func (c *DepartmentController) AssignHeadTeacher(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignHeadTeacherRequest
	if !bindJSON(ctx, &req) {
		return
	}

	department, err := c.departmentService.AssignHeadTeacher(ctx, principal, id, req.TeacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, department)
}

// DeleteDepartment handles DELETE /departments/:id.
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.departmentService.DeleteDepartment(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondDeleted(ctx, "Department deleted successfully")
}
