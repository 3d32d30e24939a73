package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"kuuslauk/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_SwallowsFailuresAndPanics(t *testing.T) {
	d := NewDispatcher(time.Second, zerolog.Nop())
	var ran atomic.Int32

	d.Go("fails", func(context.Context) error {
		ran.Add(1)
		return errors.New("boom")
	})
	d.Go("panics", func(context.Context) error {
		ran.Add(1)
		panic("boom")
	})
	d.Go("ok", func(context.Context) error {
		ran.Add(1)
		return nil
	})
	d.Wait()

	assert.Equal(t, int32(3), ran.Load())
}

func TestDispatcher_AppliesTimeout(t *testing.T) {
	d := NewDispatcher(10*time.Millisecond, zerolog.Nop())
	var got error

	d.Go("slow", func(ctx context.Context) error {
		<-ctx.Done()
		got = ctx.Err()
		return got
	})
	d.Wait()

	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestEmailNotifier(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewEmailNotifier(mailer, "kitchen@kuuslauk.ee", "KÜÜSLAUK")
	ctx := context.Background()

	order := models.Order{
		OrderNumber:   "ORD-00000042",
		CustomerName:  "<script>alert(1)</script>",
		CustomerEmail: "mari@example.com",
		PickupTime:    "18:30",
		PaymentMethod: models.PaymentMethodCash,
		Total:         price("23"),
		Items:         []models.OrderItem{{Name: "Chicken Wok", Quantity: 2, Price: price("11.50")}},
	}
	settings := models.SiteSettings{Address: "Sadama tn 7, 10111 Tallinn", Phone: "5424 0020", MapLink: "https://maps.example/x"}

	require.NoError(t, n.KitchenAlert(ctx, order))
	require.NoError(t, n.OrderReady(ctx, order, settings))

	require.Len(t, mailer.sent, 2)

	alert := mailer.sent[0]
	assert.Equal(t, "kitchen@kuuslauk.ee", alert.To)
	assert.Contains(t, alert.Subject, "ORD-00000042")
	assert.Contains(t, alert.HTML, "Chicken Wok")
	assert.Contains(t, alert.HTML, "€23.00")
	assert.NotContains(t, alert.HTML, "<script>")

	ready := mailer.sent[1]
	assert.Equal(t, "mari@example.com", ready.To)
	assert.Equal(t, "Your Order ORD-00000042 is Ready for Pickup!", ready.Subject)
	assert.Contains(t, ready.HTML, "Sadama tn 7, 10111 Tallinn")
	assert.Contains(t, ready.HTML, "https://maps.example/x")
}

func TestEmailNotifier_Reservations(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewEmailNotifier(mailer, "", "KÜÜSLAUK")
	ctx := context.Background()
	r := models.Reservation{Name: "Jane Doe", Email: "jane@example.com", Date: "2025-06-01", Time: "19:00", Guests: 4, Menu: "full-course"}

	assert.ErrorIs(t, n.ReservationReceived(ctx, r), errNoRecipient)
	require.NoError(t, n.ReservationConfirmed(ctx, r, models.SiteSettings{Phone: "5424 0020"}))
	require.NoError(t, n.ReservationCancelled(ctx, r, models.SiteSettings{}))

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "Reservation Confirmed - KÜÜSLAUK", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].HTML, "2025-06-01")
	assert.Equal(t, "Your Reservation Has Been Cancelled", mailer.sent[1].Subject)
}

func TestEmailNotifier_PropagatesMailerError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("connection refused")}
	n := NewEmailNotifier(mailer, "kitchen@kuuslauk.ee", "KÜÜSLAUK")

	err := n.KitchenAlert(context.Background(), models.Order{OrderNumber: "ORD-1", Total: price("1")})
	assert.EqualError(t, err, "connection refused")
}
