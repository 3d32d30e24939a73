package controllers

import (
	"io"
	"net/http"

	"kuuslauk/models"
	"kuuslauk/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxWebhookBody = 64 << 10

type PaymentController struct {
	payments services.PaymentService
	logger   zerolog.Logger
}

func NewPaymentController(payments services.PaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		payments: payments,
		logger:   logger.With().Str("controller", "payment").Logger(),
	}
}

// @Summary Start card payment
// @Description Opens a hosted checkout session for a card order waiting for payment.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Order"
// @Success 200 {object} models.Response{data=models.CheckoutResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *PaymentController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !req.OrderID.Valid || req.OrderID.Value < 1 {
		respondFail(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "orderId is required")
		return
	}

	resp, err := ctrl.payments.Checkout(c.Request.Context(), req.OrderID.Value)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Checkout session created", resp)
}

// @Summary Payment provider webhook
// @Tags Payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /payments/webhook [post]
func (ctrl *PaymentController) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		respondFail(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Unreadable body")
		return
	}

	if err := ctrl.payments.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Event received", nil)
}
