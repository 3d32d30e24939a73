package controllers

import (
	"net/http"

	"kuuslauk/models"
	"kuuslauk/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type MenuController struct {
	catalog services.CatalogService
	logger  zerolog.Logger
}

func NewMenuController(catalog services.CatalogService, logger zerolog.Logger) *MenuController {
	return &MenuController{
		catalog: catalog,
		logger:  logger.With().Str("controller", "menu").Logger(),
	}
}

// @Summary Get menu
// @Description Active menu items by default; pass active=false to include hidden items.
// @Tags Menu
// @Produce json
// @Param category query string false "Category slug"
// @Param active query bool false "Only active items (default true)"
// @Success 200 {object} models.Response{data=[]models.MenuItem}
// @Router /menu [get]
func (ctrl *MenuController) GetMenu(c *gin.Context) {
	filter := models.MenuFilter{
		Category:   c.Query("category"),
		ActiveOnly: c.Query("active") != "false",
	}

	items, err := ctrl.catalog.ListMenu(c.Request.Context(), filter)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Menu retrieved", items)
}

// @Summary Get menu item
// @Tags Menu
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.Response{data=models.MenuItem}
// @Failure 404 {object} models.ErrorResponse
// @Router /menu/{id} [get]
func (ctrl *MenuController) GetMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := ctrl.catalog.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Menu item retrieved", item)
}

// @Summary Create menu item
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.MenuItemRequest true "Menu item"
// @Success 201 {object} models.Response{data=models.MenuItem}
// @Failure 400 {object} models.ErrorResponse
// @Router /menu [post]
func (ctrl *MenuController) CreateMenuItem(c *gin.Context) {
	var req models.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ctrl.catalog.CreateMenuItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Menu item created", item)
}

// @Summary Update menu item
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Menu item ID"
// @Param request body models.MenuItemRequest true "Menu item"
// @Success 200 {object} models.Response{data=models.MenuItem}
// @Failure 404 {object} models.ErrorResponse
// @Router /menu/{id} [put]
func (ctrl *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ctrl.catalog.UpdateMenuItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Menu item updated", item)
}

// @Summary Delete menu item
// @Tags Admin - Menu
// @Security BearerAuth
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /menu/{id} [delete]
func (ctrl *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.catalog.DeleteMenuItem(c.Request.Context(), id); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Menu item deleted", nil)
}
