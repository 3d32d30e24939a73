package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"kuuslauk/libs"
	"kuuslauk/models"
)

// Notifier sends the customer and staff emails of the order and reservation
// workflows. Implementations may block; callers run them through a
// Dispatcher.
type Notifier interface {
	KitchenAlert(ctx context.Context, order models.Order) error
	OrderReady(ctx context.Context, order models.Order, settings models.SiteSettings) error
	ReservationReceived(ctx context.Context, reservation models.Reservation) error
	ReservationConfirmed(ctx context.Context, reservation models.Reservation, settings models.SiteSettings) error
	ReservationCancelled(ctx context.Context, reservation models.Reservation, settings models.SiteSettings) error
	PasswordReset(ctx context.Context, admin models.AdminUser, resetURL string, expiresIn time.Duration) error
}

var errNoRecipient = errors.New("no recipient address")

type EmailNotifier struct {
	mailer     libs.Mailer
	adminEmail string
	restaurant string
}

func NewEmailNotifier(mailer libs.Mailer, adminEmail, restaurant string) *EmailNotifier {
	return &EmailNotifier{
		mailer:     mailer,
		adminEmail: adminEmail,
		restaurant: restaurant,
	}
}

func (n *EmailNotifier) KitchenAlert(ctx context.Context, order models.Order) error {
	return n.send(ctx, n.adminEmail,
		fmt.Sprintf("New order %s (%s)", order.OrderNumber, order.PaymentMethod),
		kitchenAlertTmpl, map[string]any{"Order": order})
}

func (n *EmailNotifier) OrderReady(ctx context.Context, order models.Order, settings models.SiteSettings) error {
	return n.send(ctx, order.CustomerEmail,
		fmt.Sprintf("Your Order %s is Ready for Pickup!", order.OrderNumber),
		orderReadyTmpl, map[string]any{"Order": order, "Settings": settings})
}

func (n *EmailNotifier) ReservationReceived(ctx context.Context, reservation models.Reservation) error {
	return n.send(ctx, n.adminEmail,
		fmt.Sprintf("New reservation: %s, %d guests on %s", reservation.Name, reservation.Guests, reservation.Date),
		reservationReceivedTmpl, map[string]any{"Reservation": reservation})
}

func (n *EmailNotifier) ReservationConfirmed(ctx context.Context, reservation models.Reservation, settings models.SiteSettings) error {
	return n.send(ctx, reservation.Email,
		fmt.Sprintf("Reservation Confirmed - %s", n.restaurant),
		reservationConfirmedTmpl, map[string]any{"Reservation": reservation, "Settings": settings})
}

func (n *EmailNotifier) ReservationCancelled(ctx context.Context, reservation models.Reservation, settings models.SiteSettings) error {
	return n.send(ctx, reservation.Email,
		"Your Reservation Has Been Cancelled",
		reservationCancelledTmpl, map[string]any{"Reservation": reservation, "Settings": settings})
}

func (n *EmailNotifier) PasswordReset(ctx context.Context, admin models.AdminUser, resetURL string, expiresIn time.Duration) error {
	return n.send(ctx, admin.Email,
		fmt.Sprintf("Password reset - %s admin", n.restaurant),
		passwordResetTmpl, map[string]any{"Admin": admin, "ResetURL": resetURL, "ExpiresIn": expiresIn.String()})
}

func (n *EmailNotifier) send(ctx context.Context, to, subject string, tmpl *template.Template, data map[string]any) error {
	if to == "" {
		return errNoRecipient
	}

	data["Restaurant"] = n.restaurant

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	return n.mailer.Send(ctx, libs.Message{To: to, Subject: subject, HTML: body.String()})
}

// NoopNotifier is used when SMTP is not configured.
type NoopNotifier struct{}

func (NoopNotifier) KitchenAlert(context.Context, models.Order) error { return nil }
func (NoopNotifier) OrderReady(context.Context, models.Order, models.SiteSettings) error {
	return nil
}
func (NoopNotifier) ReservationReceived(context.Context, models.Reservation) error { return nil }
func (NoopNotifier) ReservationConfirmed(context.Context, models.Reservation, models.SiteSettings) error {
	return nil
}
func (NoopNotifier) ReservationCancelled(context.Context, models.Reservation, models.SiteSettings) error {
	return nil
}
func (NoopNotifier) PasswordReset(context.Context, models.AdminUser, string, time.Duration) error {
	return nil
}
