package controllers

import (
	"net/http"

	"kuuslauk/models"
	"kuuslauk/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ReservationController struct {
	reservations services.ReservationService
	logger       zerolog.Logger
}

func NewReservationController(reservations services.ReservationService, logger zerolog.Logger) *ReservationController {
	return &ReservationController{
		reservations: reservations,
		logger:       logger.With().Str("controller", "reservation").Logger(),
	}
}

// @Summary Book a table
// @Tags Reservations
// @Accept json
// @Produce json
// @Param request body models.CreateReservationRequest true "Reservation"
// @Success 201 {object} models.Response{data=models.Reservation}
// @Failure 400 {object} models.ErrorResponse
// @Router /reservations [post]
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reservation, err := ctrl.reservations.CreateReservation(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Reservation received", reservation)
}

// @Summary List reservations
// @Tags Admin - Reservations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Reservation}
// @Router /reservations [get]
func (ctrl *ReservationController) ListReservations(c *gin.Context) {
	reservations, err := ctrl.reservations.ListReservations(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Reservations retrieved", reservations)
}

// @Summary Update reservation status
// @Description pending → confirmed | cancelled, confirmed → completed. Confirm and cancel email the guest.
// @Tags Admin - Reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body models.UpdateStatusRequest true "New status"
// @Success 200 {object} models.Response{data=models.Reservation}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /reservations/{id} [put]
func (ctrl *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reservation, err := ctrl.reservations.UpdateReservationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Reservation status updated", reservation)
}

// @Summary Delete reservation
// @Description Only cancelled or completed reservations can be deleted
// @Tags Admin - Reservations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /reservations/{id} [delete]
func (ctrl *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.reservations.DeleteReservation(c.Request.Context(), id); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Reservation deleted", nil)
}
