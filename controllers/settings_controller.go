package controllers

import (
	"net/http"

	"kuuslauk/models"
	"kuuslauk/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type SettingsController struct {
	settings services.SettingsService
	logger   zerolog.Logger
}

func NewSettingsController(settings services.SettingsService, logger zerolog.Logger) *SettingsController {
	return &SettingsController{
		settings: settings,
		logger:   logger.With().Str("controller", "settings").Logger(),
	}
}

// @Summary Get site settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Response{data=models.SiteSettings}
// @Router /settings [get]
func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	respondOK(c, http.StatusOK, "Settings retrieved", ctrl.settings.Get(c.Request.Context()))
}

// @Summary Update site settings
// @Description Partial update; omitted fields keep their current value.
// @Tags Admin - Settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateSettingsRequest true "Settings"
// @Success 200 {object} models.Response{data=models.SiteSettings}
// @Failure 503 {object} models.ErrorResponse
// @Router /settings [put]
func (ctrl *SettingsController) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := ctrl.settings.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Settings updated", settings)
}
