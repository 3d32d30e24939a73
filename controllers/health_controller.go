package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db Pinger
}

// NewHealthController accepts a nil Pinger when no database is configured.
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	database := "disabled"
	if ctrl.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := ctrl.db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		database = "ok"
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": database})
}
