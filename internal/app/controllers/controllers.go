package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/middleware"
)

// Shared request plumbing for the controllers: path/query parsing and the
// standard response envelope. Anything that fails here never reaches a
// service.

// parseIDParam reads an int64 path parameter and writes the 400 itself on
// failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

// parseOptionalInt64Query reads an optional int64 query parameter.
func parseOptionalInt64Query(ctx *gin.Context, name string) (*int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return nil, false
	}
	return &value, true
}

// requirePrincipal retrieves the authenticated principal; the auth
// middleware guarantees it is present on protected routes.
func requirePrincipal(ctx *gin.Context) (*auth.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return nil, false
	}
	return principal, true
}

func bindJSON(ctx *gin.Context, target any) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}

func respondOK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: data, Timestamp: time.Now()})
}

func respondCreated(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: data, Timestamp: time.Now()})
}

func respondDeleted(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: message},
		Timestamp: time.Now(),
	})
}
