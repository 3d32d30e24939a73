package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"kuuslauk/libs"
	"kuuslauk/middleware"
	"kuuslauk/models"
	"kuuslauk/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondFail(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Success:   false,
		Message:   message,
		Code:      code,
		RequestID: middleware.RequestID(c),
	})
}

func respondBindError(c *gin.Context, err error) {
	respondFail(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Invalid request body: "+err.Error())
}

// respondError maps service errors onto HTTP statuses. Anything it does not
// recognise is logged and reported as a 500 without details.
func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	var domainErr *models.DomainError
	switch {
	case errors.As(err, &domainErr):
		respondFail(c, domainStatus(domainErr.Code), domainErr.Code, domainErr.Message)
	case errors.Is(err, models.ErrNotFound), errors.Is(err, libs.ErrImageNotFound):
		respondFail(c, http.StatusNotFound, models.ErrCodeNotFound, "Not found")
	case errors.Is(err, models.ErrStatusChanged):
		respondFail(c, http.StatusConflict, models.ErrCodeConflict, "Status was changed by someone else, reload and try again")
	case errors.Is(err, models.ErrDuplicate):
		respondFail(c, http.StatusConflict, models.ErrCodeConflict, "Record already exists")
	case errors.Is(err, models.ErrInvalidCredentials):
		respondFail(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Invalid email or password")
	case errors.Is(err, models.ErrUnauthorized):
		respondFail(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Authentication required")
	case errors.Is(err, models.ErrDatabaseUnavailable):
		logger.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg("database unavailable")
		respondFail(c, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Database is unavailable")
	case errors.Is(err, utils.ErrImageTooLarge), errors.Is(err, utils.ErrInvalidFileType):
		respondFail(c, http.StatusBadRequest, models.ErrCodeInvalidInput, err.Error())
	case errors.Is(err, libs.ErrInvalidSignature):
		respondFail(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Invalid signature")
	default:
		logger.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg("request failed")
		respondFail(c, http.StatusInternalServerError, models.ErrCodeInternalError, "Internal server error")
	}
}

func domainStatus(code string) int {
	switch code {
	case models.ErrCodeInvalidTransition, models.ErrCodeConflict:
		return http.StatusConflict
	case models.ErrCodeNotFound:
		return http.StatusNotFound
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case models.ErrCodePaymentUnavailable, models.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

// parseID reads the :id path parameter, answering 400 itself when it is
// not a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondFail(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Invalid id")
		return 0, false
	}
	return id, true
}
