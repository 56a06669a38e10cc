package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/app/services"
	"github.com/davnat/scolaris/internal/middleware"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// ClassroomController handles classroom endpoints.
type ClassroomController struct {
	classroomService *services.ClassroomService
}

// NewClassroomController creates a new ClassroomController.
func NewClassroomController(classroomService *services.ClassroomService) *ClassroomController {
	return &ClassroomController{classroomService: classroomService}
}

// CreateClassroom handles POST /classrooms.
func (c *ClassroomController) CreateClassroom(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateClassroomRequest
	if !bindJSON(ctx, &req) {
		return
	}

	classroom, err := c.classroomService.CreateClassroom(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, classroom)
}

// GetClassroom handles GET /classrooms/:id.
func (c *ClassroomController) GetClassroom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	classroom, err := c.classroomService.GetClassroom(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, classroom)
}

// ListClassrooms handles GET /classrooms.
func (c *ClassroomController) ListClassrooms(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.classroomService.ListClassrooms(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, list)
}

// UpdateClassroom handles PUT /classrooms/:id.
func (c *ClassroomController) UpdateClassroom(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassroomRequest
	if !bindJSON(ctx, &req) {
		return
	}

	classroom, err := c.classroomService.UpdateClassroom(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, classroom)
}

// DeleteClassroom handles DELETE /classrooms/:id.
func (c *ClassroomController) DeleteClassroom(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.classroomService.DeleteClassroom(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondDeleted(ctx, "Classroom deleted successfully")
}
