package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
	"github.com/davnat/scolaris/internal/pkg/logger"
)

// HandleAPIError maps a service error onto an HTTP response. Errors carry
// their kind through errors.Is, so controllers stay free of status codes.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, err)

	case errors.Is(err, apperrors.ErrUnauthorized):
		// Authenticated but not allowed.
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, err)

	case errors.Is(err, apperrors.ErrValidation):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)

	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, err)

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
			Timestamp: time.Now(),
		})
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, err error) {
	c.JSON(status, dto.APIResponse{
		Error:     dto.NewErrorDetail(code, err.Error()),
		Timestamp: time.Now(),
	})
}
