package controllers

import (
	"net/http"
	"time"

	"kuuslauk/models"
	"kuuslauk/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type OfferController struct {
	catalog services.CatalogService
	now     func() time.Time
	logger  zerolog.Logger
}

func NewOfferController(catalog services.CatalogService, logger zerolog.Logger) *OfferController {
	return &OfferController{
		catalog: catalog,
		now:     time.Now,
		logger:  logger.With().Str("controller", "offer").Logger(),
	}
}

// @Summary Get offers
// @Tags Offers
// @Produce json
// @Param active query bool false "Only offers running today"
// @Param type query string false "Offer type, e.g. daily"
// @Success 200 {object} models.Response{data=[]models.Offer}
// @Router /offers [get]
func (ctrl *OfferController) GetOffers(c *gin.Context) {
	filter := models.OfferFilter{Type: c.Query("type")}
	if c.Query("active") == "true" {
		filter.ActiveOn = ctrl.now().Format("2006-01-02")
	}

	offers, err := ctrl.catalog.ListOffers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Offers retrieved", offers)
}

// @Summary Get offer
// @Tags Offers
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} models.Response{data=models.Offer}
// @Failure 404 {object} models.ErrorResponse
// @Router /offers/{id} [get]
func (ctrl *OfferController) GetOffer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	offer, err := ctrl.catalog.GetOffer(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Offer retrieved", offer)
}

// @Summary Create offer
// @Tags Admin - Offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.OfferRequest true "Offer"
// @Success 201 {object} models.Response{data=models.Offer}
// @Failure 400 {object} models.ErrorResponse
// @Router /offers [post]
func (ctrl *OfferController) CreateOffer(c *gin.Context) {
	var req models.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	offer, err := ctrl.catalog.CreateOffer(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Offer created", offer)
}

// @Summary Update offer
// @Tags Admin - Offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param request body models.OfferRequest true "Offer"
// @Success 200 {object} models.Response{data=models.Offer}
// @Failure 404 {object} models.ErrorResponse
// @Router /offers/{id} [put]
func (ctrl *OfferController) UpdateOffer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	offer, err := ctrl.catalog.UpdateOffer(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Offer updated", offer)
}

// @Summary Delete offer
// @Tags Admin - Offers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} models.Response
// @Router /offers/{id} [delete]
func (ctrl *OfferController) DeleteOffer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.catalog.DeleteOffer(c.Request.Context(), id); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Offer deleted", nil)
}
