package middleware

import (
	"net/http"

	"kuuslauk/models"

	"github.com/gin-gonic/gin"
)

// RequireDatabase rejects the request with 503 when no database is
// configured.
func RequireDatabase(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Success:   false,
				Message:   "Database is not configured",
				Code:      models.ErrCodeUnavailable,
				RequestID: RequestID(c),
			})
			return
		}
		c.Next()
	}
}

// EmptyWithoutDatabase answers list requests with an empty array when no
// database is configured, so the public site still renders.
func EmptyWithoutDatabase(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatusJSON(http.StatusOK, models.Response{
				Success: true,
				Message: "Database is not configured",
				Data:    []any{},
			})
			return
		}
		c.Next()
	}
}
