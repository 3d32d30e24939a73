package libs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"kuuslauk/config"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const checkoutCurrency = "eur"

var ErrInvalidSignature = errors.New("invalid webhook signature")

type CheckoutLine struct {
	Name string
	// UnitAmount is in cents.
	UnitAmount int64
	Quantity   int64
}

type CheckoutInput struct {
	OrderID       int64
	OrderNumber   string
	CustomerEmail string
	Lines         []CheckoutLine
}

type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentEvent is the part of a provider webhook the order workflow acts on.
// Relevant is false for event types that carry no payment outcome.
type PaymentEvent struct {
	Relevant  bool
	Paid      bool
	OrderID   int64
	SessionID string
	Type      string
}

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	baseURL       string
	logger        zerolog.Logger
}

func NewStripeGateway(cfg config.StripeConfig, logger zerolog.Logger) *StripeGateway {
	return &StripeGateway{
		api:           client.New(cfg.SecretKey, nil),
		webhookSecret: cfg.WebhookSecret,
		baseURL:       cfg.BaseURL,
		logger:        logger.With().Str("lib", "stripe").Logger(),
	}
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	orderID := strconv.FormatInt(in.OrderID, 10)

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(fmt.Sprintf("%s/?payment=success&orderId=%s", g.baseURL, orderID)),
		CancelURL:          stripe.String(fmt.Sprintf("%s/?payment=cancel&orderId=%s", g.baseURL, orderID)),
		ClientReferenceID:  stripe.String(in.OrderNumber),
	}
	params.Context = ctx
	params.AddMetadata("orderId", orderID)
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}

	for _, line := range in.Lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(checkoutCurrency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		g.logger.Error().Err(err).Int64("order_id", in.OrderID).Msg("checkout session creation failed")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	g.logger.Info().
		Int64("order_id", in.OrderID).
		Str("session_id", session.ID).
		Msg("checkout session created")

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		g.logger.Warn().Err(err).Msg("webhook signature verification failed")
		return nil, ErrInvalidSignature
	}

	result := &PaymentEvent{Type: string(event.Type)}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
	default:
		return result, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	orderID, err := strconv.ParseInt(session.Metadata["orderId"], 10, 64)
	if err != nil {
		g.logger.Warn().Str("session_id", session.ID).Msg("checkout session without order id")
		return result, nil
	}

	result.Relevant = true
	result.OrderID = orderID
	result.SessionID = session.ID
	result.Paid = session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
	return result, nil
}
