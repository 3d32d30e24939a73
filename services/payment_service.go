package services

import (
	"context"
	"errors"

	"kuuslauk/libs"
	"kuuslauk/models"
	"kuuslauk/repositories"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentGateway is implemented by libs.StripeGateway.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, in libs.CheckoutInput) (*libs.CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*libs.PaymentEvent, error)
}

type PaymentService interface {
	// Checkout opens a hosted payment page for a card order that is still
	// waiting for payment. Amounts come from the persisted line items.
	Checkout(ctx context.Context, orderID int64) (*models.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	gateway  PaymentGateway
	orders   repositories.OrderRepository
	workflow OrderService
	logger   zerolog.Logger
}

var hundred = decimal.NewFromInt(100)

// NewPaymentService accepts a nil gateway when payments are not configured;
// every call then fails with models.ErrPaymentDisabled.
func NewPaymentService(gateway PaymentGateway, orders repositories.OrderRepository, workflow OrderService, logger zerolog.Logger) PaymentService {
	return &paymentService{
		gateway:  gateway,
		orders:   orders,
		workflow: workflow,
		logger:   logger.With().Str("service", "payment").Logger(),
	}
}

func (s *paymentService) Checkout(ctx context.Context, orderID int64) (*models.CheckoutResponse, error) {
	if s.gateway == nil {
		return nil, models.ErrPaymentDisabled
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod != models.PaymentMethodCard {
		return nil, models.InvalidInput("Order is not paid by card")
	}
	if order.Status != models.OrderStatusPendingPayment {
		return nil, models.NewDomainError(models.ErrCodeConflict, "Order has already been paid")
	}

	lines := make([]libs.CheckoutLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, libs.CheckoutLine{
			Name:       item.Name,
			UnitAmount: item.Price.Mul(hundred).Round(0).IntPart(),
			Quantity:   int64(item.Quantity),
		})
	}

	session, err := s.gateway.CreateCheckout(ctx, libs.CheckoutInput{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerEmail: order.CustomerEmail,
		Lines:         lines,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to create checkout session")
		return nil, err
	}

	if err := s.orders.SetPaymentSession(ctx, order.ID, session.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("order_id", order.ID).Str("session_id", session.ID).Msg("checkout session created")
	return &models.CheckoutResponse{URL: session.URL}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.gateway == nil {
		return models.ErrPaymentDisabled
	}

	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if !event.Relevant {
		s.logger.Debug().Str("type", event.Type).Msg("ignoring payment event")
		return nil
	}
	if !event.Paid {
		s.logger.Info().Str("type", event.Type).Str("session_id", event.SessionID).Msg("checkout completed without payment")
		return nil
	}

	_, err = s.workflow.ConfirmPayment(ctx, event.OrderID)
	if errors.Is(err, models.ErrNotFound) {
		s.logger.Warn().Int64("order_id", event.OrderID).Str("session_id", event.SessionID).Msg("payment for unknown order")
		return nil
	}
	return err
}
