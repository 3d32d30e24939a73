package controllers

import (
	"net/http"

	"kuuslauk/models"
	"kuuslauk/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type OrderController struct {
	orders services.OrderService
	logger zerolog.Logger
}

func NewOrderController(orders services.OrderService, logger zerolog.Logger) *OrderController {
	return &OrderController{
		orders: orders,
		logger: logger.With().Str("controller", "order").Logger(),
	}
}

// @Summary Place an order
// @Description Create a pickup order. Card orders wait for payment, cash orders go straight to the kitchen.
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Order"
// @Success 201 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := ctrl.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Order placed successfully", order)
}

// @Summary List orders
// @Description All orders newest first, line items included (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Order}
// @Failure 401 {object} models.ErrorResponse
// @Router /orders [get]
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctrl.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Orders retrieved", orders)
}

// @Summary Get order
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := ctrl.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Order retrieved", order)
}

// @Summary Update order status
// @Description Moves the order one stage along pending_payment → pending → preparing → ready → completed. Entering ready emails the customer.
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.UpdateStatusRequest true "New status"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id} [put]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := ctrl.orders.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Order status updated", order)
}

// @Summary Delete order
// @Description Only completed orders can be deleted
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Order deleted", nil)
}
