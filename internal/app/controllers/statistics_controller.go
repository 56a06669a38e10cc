package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/davnat/scolaris/internal/app/services"
	"github.com/davnat/scolaris/internal/middleware"
)

// StatisticsController exposes the grade aggregation endpoints.
type StatisticsController struct {
	statisticsService *services.StatisticsService
}

// NewStatisticsController creates a new StatisticsController.
func NewStatisticsController(statisticsService *services.StatisticsService) *StatisticsController {
	return &StatisticsController{statisticsService: statisticsService}
}

type averageResponse struct {
	Average decimal.Decimal `json:"average"`
}

// GetSubjectAverage handles GET /statistics/subjects/:id/average.
func (c *StatisticsController) GetSubjectAverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	average, err := c.statisticsService.SubjectAverage(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, averageResponse{Average: average})
}

// GetSubjectStatistics handles GET /statistics/subjects/:id.
func (c *StatisticsController) GetSubjectStatistics(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	stats, err := c.statisticsService.SubjectStatistics(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, stats)
}

// GetDepartmentAverage handles GET /statistics/departments/:id/average.
func (c *StatisticsController) GetDepartmentAverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	average, err := c.statisticsService.DepartmentAverage(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, averageResponse{Average: average})
}

// GetStudentGeneralAverage handles GET /statistics/students/:id/average.
func (c *StatisticsController) GetStudentGeneralAverage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	average, err := c.statisticsService.StudentGeneralAverage(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, averageResponse{Average: average})
}

// GetStudentSubjectAverage handles GET /statistics/students/:id/subjects/:subjectId/average.
func (c *StatisticsController) GetStudentSubjectAverage(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	subjectID, ok := parseIDParam(ctx, "subjectId")
	if !ok {
		return
	}

	average, err := c.statisticsService.StudentSubjectAverage(ctx, studentID, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, averageResponse{Average: average})
}

// GetStudentRank handles GET /statistics/students/:id/subjects/:subjectId/rank.
// A student without a usable average has no rank; the data field is null.
func (c *StatisticsController) GetStudentRank(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	subjectID, ok := parseIDParam(ctx, "subjectId")
	if !ok {
		return
	}

	rank, err := c.statisticsService.StudentRank(ctx, studentID, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, rank)
}

// GetMissingGrades handles GET /statistics/students/:id/missing-grades.
func (c *StatisticsController) GetMissingGrades(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	missing, err := c.statisticsService.MissingGrades(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, missing)
}
