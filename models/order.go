package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusCompleted      OrderStatus = "completed"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusPending},
	OrderStatusPending:        {OrderStatusPreparing},
	OrderStatusPreparing:      {OrderStatusReady},
	OrderStatusReady:          {OrderStatusCompleted},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusPending, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted
}

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCash
}

// InitialStatus is the status a freshly placed order starts in. Card orders
// wait for the payment provider to confirm before the kitchen sees them.
func (m PaymentMethod) InitialStatus() OrderStatus {
	if m == PaymentMethodCard {
		return OrderStatusPendingPayment
	}
	return OrderStatusPending
}

type Order struct {
	ID               int64           `json:"id"`
	OrderNumber      string          `json:"orderNumber"`
	CustomerName     string          `json:"customerName"`
	CustomerPhone    string          `json:"customerPhone,omitempty"`
	CustomerEmail    string          `json:"customerEmail,omitempty"`
	Items            []OrderItem     `json:"items"`
	Total            decimal.Decimal `json:"total"`
	PickupTime       string          `json:"pickupTime"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	Notes            string          `json:"notes,omitempty"`
	Status           OrderStatus     `json:"status"`
	PaymentSessionID string          `json:"-"`
	NotifiedAt       *time.Time      `json:"notifiedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// OrderItem is a line item snapshot: name and price are copied at order time
// and never re-read from the menu.
type OrderItem struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"orderId"`
	MenuItemID    *int64          `json:"menuItemId,omitempty"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	ProteinChoice string          `json:"proteinChoice,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// proteinSurcharges lists the wok proteins that cost extra per portion.
var proteinSurcharges = map[string]decimal.Decimal{
	"shrimp": decimal.NewFromInt(2),
}

// ProteinSurcharge returns the extra charged per portion for a protein
// choice. Unknown and free choices return zero.
func ProteinSurcharge(choice string) decimal.Decimal {
	if extra, ok := proteinSurcharges[strings.ToLower(strings.TrimSpace(choice))]; ok {
		return extra
	}
	return decimal.Zero
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName" binding:"required"`
	CustomerPhone string             `json:"customerPhone"`
	CustomerEmail string             `json:"customerEmail"`
	Items         []OrderItemRequest `json:"items"`
	Total         *decimal.Decimal   `json:"total"`
	PickupTime    string             `json:"pickupTime" binding:"required"`
	PaymentMethod PaymentMethod      `json:"paymentMethod" binding:"required"`
	Notes         string             `json:"notes"`
}

type OrderItemRequest struct {
	ID            LooseInt        `json:"id"`
	Name          string          `json:"name"`
	NameEn        string          `json:"name_en"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	ProteinChoice string          `json:"proteinChoice"`
	Notes         string          `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CheckoutRequest struct {
	OrderID LooseInt `json:"orderId"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
