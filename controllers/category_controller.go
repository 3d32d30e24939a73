package controllers

import (
	"net/http"

	"kuuslauk/models"
	"kuuslauk/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type CategoryController struct {
	catalog services.CatalogService
	logger  zerolog.Logger
}

func NewCategoryController(catalog services.CatalogService, logger zerolog.Logger) *CategoryController {
	return &CategoryController{
		catalog: catalog,
		logger:  logger.With().Str("controller", "category").Logger(),
	}
}

// @Summary Get all categories
// @Description Menu categories in display order. Built-in defaults are served when no database is configured.
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Category}
// @Router /categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	categories, err := ctrl.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Categories retrieved", categories)
}

// @Summary Create category
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.Response{data=models.Category}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := ctrl.catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Category created", category)
}

// @Summary Update category
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "Category"
// @Success 200 {object} models.Response{data=models.Category}
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := ctrl.catalog.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Category updated", category)
}

// @Summary Delete category
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Category deleted", nil)
}
