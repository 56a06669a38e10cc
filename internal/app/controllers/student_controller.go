package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/app/services"
	"github.com/davnat/scolaris/internal/middleware"
	"github.com/davnat/scolaris/internal/pkg/helpers"
)

// StudentController handles student and enrollment endpoints.
type StudentController struct {
	studentService    *services.StudentService
	enrollmentService *services.EnrollmentService
}

// NewStudentController creates a new StudentController.
func NewStudentController(studentService *services.StudentService, enrollmentService *services.EnrollmentService) *StudentController {
	return &StudentController{
		studentService:    studentService,
		enrollmentService: enrollmentService,
	}
}

// CreateStudent handles POST /students.
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, student)
}

// GetStudent handles GET /students/:id.
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, student)
}

// ListStudents handles GET /students with an optional entryYear filter.
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var entryYear *int
	if raw := ctx.Query("entryYear"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid entryYear parameter")
			ctx.JSON(400, dto.NewErrorResponse(detail))
			return
		}
		entryYear = &year
	}
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.studentService.ListStudents(ctx, entryYear, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, list)
}

// UpdateStudent handles PUT /students/:id.
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, student)
}

// DeleteStudent handles DELETE /students/:id.
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondDeleted(ctx, "Student deleted successfully")
}

// Enroll handles POST /students/:id/enrollments.
func (c *StudentController) Enroll(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		SubjectID int64 `json:"subjectId" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, principal, studentID, req.SubjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, enrollment)
}

// Unenroll handles DELETE /students/:id/enrollments/:subjectId.
func (c *StudentController) Unenroll(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	subjectID, ok := parseIDParam(ctx, "subjectId")
	if !ok {
		return
	}

	if err := c.enrollmentService.Unenroll(ctx, principal, studentID, subjectID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondDeleted(ctx, "Student unenrolled successfully")
}

// ListEnrollments handles GET /students/:id/enrollments.
func (c *StudentController) ListEnrollments(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListByStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, enrollments)
}
