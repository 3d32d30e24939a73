package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kuuslauk/models"
	"kuuslauk/repositories"
	"kuuslauk/utils"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultItemName     = "Menu Item"
	orderNumberAttempts = 3
	totalToleranceCents = 1
	maxItemQuantity     = 99
)

var (
	totalTolerance = decimal.New(totalToleranceCents, -2)
	// maxAmount is the largest value a NUMERIC(10,2) column holds.
	maxAmount = decimal.RequireFromString("99999999.99")
)

type OrderService interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	// ConfirmPayment moves a card order out of pending_payment. Calling it
	// again for an already confirmed order is a no-op.
	ConfirmPayment(ctx context.Context, id int64) (*models.Order, error)
}

type orderService struct {
	orders       repositories.OrderRepository
	menu         repositories.MenuRepository
	settings     SettingsService
	notifier     Notifier
	dispatcher   *Dispatcher
	numbers      *utils.OrderNumberGenerator
	verifyPrices bool
	logger       zerolog.Logger
}

func NewOrderService(
	orders repositories.OrderRepository,
	menu repositories.MenuRepository,
	settings SettingsService,
	notifier Notifier,
	dispatcher *Dispatcher,
	numbers *utils.OrderNumberGenerator,
	verifyPrices bool,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders:       orders,
		menu:         menu,
		settings:     settings,
		notifier:     notifier,
		dispatcher:   dispatcher,
		numbers:      numbers,
		verifyPrices: verifyPrices,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	order, err := s.buildOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		order.OrderNumber = s.numbers.Next()
		err = s.orders.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrDuplicate) || attempt == orderNumberAttempts {
			return nil, err
		}
		s.logger.Warn().Str("order_number", order.OrderNumber).Int("attempt", attempt).Msg("order number collision, retrying")
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("payment_method", string(order.PaymentMethod)).
		Str("total", order.Total.StringFixed(2)).
		Msg("order created")

	if order.Status == models.OrderStatusPending {
		s.alertKitchen(*order)
	}

	return order, nil
}

func (s *orderService) buildOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		return nil, models.InvalidInput("Customer name is required")
	}
	if strings.TrimSpace(req.PickupTime) == "" {
		return nil, models.InvalidInput("Pickup time is required")
	}
	if !req.PaymentMethod.Valid() {
		return nil, models.InvalidInput("Payment method must be card or cash")
	}
	if len(req.Items) == 0 {
		return nil, models.InvalidInput("Order must contain at least one item")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for i, in := range req.Items {
		if in.Quantity < 1 {
			return nil, models.InvalidInput(fmt.Sprintf("Item %d: quantity must be at least 1", i+1))
		}
		if in.Quantity > maxItemQuantity {
			return nil, models.InvalidInput(fmt.Sprintf("Item %d: quantity must be at most %d", i+1, maxItemQuantity))
		}
		if in.Price.IsNegative() {
			return nil, models.InvalidInput(fmt.Sprintf("Item %d: price must not be negative", i+1))
		}
		if in.Price.GreaterThan(maxAmount) {
			return nil, models.InvalidInput(fmt.Sprintf("Item %d: price is too large", i+1))
		}

		items = append(items, models.OrderItem{
			MenuItemID:    in.ID.Ptr(),
			Name:          itemName(in),
			Quantity:      in.Quantity,
			Price:         in.Price.Round(2),
			ProteinChoice: strings.TrimSpace(in.ProteinChoice),
			Notes:         in.Notes,
		})
	}

	settled, err := s.checkMenuItems(ctx, items)
	if err != nil {
		return nil, err
	}

	total, err := settleTotal(items, settled, req.Total)
	if err != nil {
		return nil, err
	}
	if total.GreaterThan(maxAmount) {
		return nil, models.InvalidInput("Order total is too large")
	}

	return &models.Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Items:         items,
		Total:         total,
		PickupTime:    strings.TrimSpace(req.PickupTime),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Status:        req.PaymentMethod.InitialStatus(),
	}, nil
}

// checkMenuItems drops references to menu items that no longer exist and,
// when price verification is on, rejects items priced differently from the
// active catalog entry. A line may carry the catalog price with or without
// its protein surcharge; lines matched to the catalog come back settled at
// catalog price plus surcharge.
func (s *orderService) checkMenuItems(ctx context.Context, items []models.OrderItem) ([]bool, error) {
	settled := make([]bool, len(items))

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if item.MenuItemID != nil {
			ids = append(ids, *item.MenuItemID)
		}
	}
	if len(ids) == 0 || s.menu == nil {
		return settled, nil
	}

	found, err := s.menu.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalog := make(map[int64]models.MenuItem, len(found))
	for _, m := range found {
		catalog[m.ID] = m
	}

	for i := range items {
		if items[i].MenuItemID == nil {
			continue
		}
		m, ok := catalog[*items[i].MenuItemID]
		if !ok {
			items[i].MenuItemID = nil
			continue
		}

		withExtra := m.Price.Add(models.ProteinSurcharge(items[i].ProteinChoice))
		switch {
		case items[i].Price.Equal(withExtra):
			settled[i] = true
		case items[i].Price.Equal(m.Price):
			items[i].Price = withExtra
			settled[i] = true
		case s.verifyPrices && m.IsActive:
			return nil, models.NewDomainError(models.ErrCodePriceMismatch,
				fmt.Sprintf("Price of %s has changed to %s", items[i].Name, withExtra.StringFixed(2)))
		}
	}
	return settled, nil
}

// settleTotal recomputes the order total. Lines not settled against the
// catalog may have been priced without their protein surcharge; the
// surcharge is applied to them when that is what the submitted total says.
func settleTotal(items []models.OrderItem, settled []bool, submitted *decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	extra := decimal.Zero
	for i, item := range items {
		total = total.Add(item.LineTotal())
		if !settled[i] {
			extra = extra.Add(models.ProteinSurcharge(item.ProteinChoice).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	if submitted == nil || withinTolerance(*submitted, total) {
		return total, nil
	}

	if extra.IsPositive() && withinTolerance(*submitted, total.Add(extra)) {
		for i := range items {
			if !settled[i] {
				items[i].Price = items[i].Price.Add(models.ProteinSurcharge(items[i].ProteinChoice))
			}
		}
		return total.Add(extra), nil
	}

	return decimal.Zero, models.NewDomainError(models.ErrCodePriceMismatch,
		fmt.Sprintf("Order total %s does not match items total %s", submitted.StringFixed(2), total.StringFixed(2)))
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(totalTolerance)
}

func itemName(in models.OrderItemRequest) string {
	if name := strings.TrimSpace(in.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(in.NameEn); name != "" {
		return name
	}
	return defaultItemName
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	next := models.OrderStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, models.ErrInvalidStatus
	}

	current, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == next {
		return current, nil
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, models.ErrInvalidTransition
	}

	order, err := s.orders.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return nil, err
	}

	switch next {
	case models.OrderStatusPending:
		s.alertKitchen(*order)
	case models.OrderStatusReady:
		s.notifyReady(*order)
	}

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.IsTerminal() {
		return models.ErrNotDeletable
	}

	if err := s.orders.Delete(ctx, id, order.Status); err != nil {
		return err
	}

	s.logger.Info().Int64("order_id", id).Str("order_number", order.OrderNumber).Msg("order deleted")
	return nil
}

func (s *orderService) ConfirmPayment(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPendingPayment {
		s.logger.Debug().Int64("order_id", id).Str("status", string(order.Status)).Msg("payment already confirmed")
		return order, nil
	}

	order, err = s.orders.UpdateStatus(ctx, id, models.OrderStatusPendingPayment, models.OrderStatusPending)
	if errors.Is(err, models.ErrStatusChanged) {
		// A concurrent delivery of the same event won the race.
		return s.orders.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("order_id", id).Str("order_number", order.OrderNumber).Msg("payment confirmed")
	s.alertKitchen(*order)
	return order, nil
}

func (s *orderService) alertKitchen(order models.Order) {
	s.dispatcher.Go("kitchen_alert:"+order.OrderNumber, func(ctx context.Context) error {
		return s.notifier.KitchenAlert(ctx, order)
	})
}

func (s *orderService) notifyReady(order models.Order) {
	if order.CustomerEmail == "" {
		return
	}
	s.dispatcher.Go("order_ready:"+order.OrderNumber, func(ctx context.Context) error {
		return s.notifier.OrderReady(ctx, order, s.settings.Get(ctx))
	})
}
