package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kuuslauk/models"
	"kuuslauk/utils"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orders     *MockOrderRepository
	menu       *MockMenuRepository
	notifier   *recordingNotifier
	dispatcher *Dispatcher
	service    OrderService
}

func newOrderFixture(verifyPrices bool) *orderFixture {
	f := &orderFixture{
		orders:     new(MockOrderRepository),
		menu:       new(MockMenuRepository),
		notifier:   &recordingNotifier{},
		dispatcher: NewDispatcher(time.Second, zerolog.Nop()),
	}
	settings := staticSettings{settings: models.SiteSettings{RestaurantName: "KÜÜSLAUK", Address: "Sadama tn 7"}}
	f.service = NewOrderService(f.orders, f.menu, settings, f.notifier, f.dispatcher,
		utils.NewOrderNumberGenerator(), verifyPrices, zerolog.Nop())
	return f
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cashRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		CustomerName:  "Mari Tamm",
		CustomerPhone: "+372 5555 1234",
		CustomerEmail: "mari@example.com",
		PickupTime:    "18:30",
		PaymentMethod: models.PaymentMethodCash,
		Items: []models.OrderItemRequest{
			{ID: models.NewLooseInt(1), Name: "Chicken Wok", Quantity: 2, Price: price("11.50")},
			{Name: "", NameEn: "Garlic Bread", Quantity: 1, Price: price("3.20")},
			{Quantity: 1, Price: price("0")},
		},
	}
}

func expectCreate(orders *MockOrderRepository, id int64) {
	orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Order).ID = id
		}).
		Return(nil).Once()
}

func TestOrderService_CreateOrder_Cash(t *testing.T) {
	f := newOrderFixture(true)
	ctx := context.Background()

	f.menu.On("GetByIDs", mock.Anything, []int64{1}).
		Return([]models.MenuItem{{ID: 1, Price: price("11.50"), IsActive: true}}, nil)
	expectCreate(f.orders, 7)

	order, err := f.service.CreateOrder(ctx, cashRequest())
	require.NoError(t, err)
	f.dispatcher.Wait()

	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Regexp(t, `^ORD-\d{8}$`, order.OrderNumber)
	assert.True(t, price("26.20").Equal(order.Total), "total was %s", order.Total)
	require.Len(t, order.Items, 3)
	assert.Equal(t, "Garlic Bread", order.Items[1].Name)
	assert.Equal(t, defaultItemName, order.Items[2].Name)
	require.NotNil(t, order.Items[0].MenuItemID)
	assert.Nil(t, order.Items[1].MenuItemID)

	calls := f.notifier.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "kitchen_alert", calls[0].Kind)
	assert.Equal(t, order.OrderNumber, calls[0].To)

	f.orders.AssertExpectations(t)
	f.menu.AssertExpectations(t)
}

func TestOrderService_CreateOrder_CardWaitsForPayment(t *testing.T) {
	f := newOrderFixture(true)
	req := cashRequest()
	req.PaymentMethod = models.PaymentMethodCard
	req.Items = req.Items[1:]

	expectCreate(f.orders, 8)

	order, err := f.service.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	f.dispatcher.Wait()

	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
	assert.Empty(t, f.notifier.Calls())
	f.menu.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateOrderRequest)
		code   string
	}{
		{
			name:   "missing customer name",
			mutate: func(r *models.CreateOrderRequest) { r.CustomerName = "  " },
			code:   models.ErrCodeInvalidInput,
		},
		{
			name:   "missing pickup time",
			mutate: func(r *models.CreateOrderRequest) { r.PickupTime = "" },
			code:   models.ErrCodeInvalidInput,
		},
		{
			name:   "unknown payment method",
			mutate: func(r *models.CreateOrderRequest) { r.PaymentMethod = "crypto" },
			code:   models.ErrCodeInvalidInput,
		},
		{
			name:   "no items",
			mutate: func(r *models.CreateOrderRequest) { r.Items = nil },
			code:   models.ErrCodeInvalidInput,
		},
		{
			name:   "zero quantity",
			mutate: func(r *models.CreateOrderRequest) { r.Items[0].Quantity = 0 },
			code:   models.ErrCodeInvalidInput,
		},
		{
			name:   "negative price",
			mutate: func(r *models.CreateOrderRequest) { r.Items[1].Price = price("-1") },
			code:   models.ErrCodeInvalidInput,
		},
		{
			name:   "quantity above limit",
			mutate: func(r *models.CreateOrderRequest) { r.Items[0].Quantity = maxItemQuantity + 1 },
			code:   models.ErrCodeInvalidInput,
		},
		{
			name:   "price wider than the stored column",
			mutate: func(r *models.CreateOrderRequest) { r.Items[1].Price = price("100000000") },
			code:   models.ErrCodeInvalidInput,
		},
		{
			name: "total wider than the stored column",
			mutate: func(r *models.CreateOrderRequest) {
				r.Items[1].Price = price("99999999.99")
				r.Items[1].Quantity = 2
			},
			code: models.ErrCodeInvalidInput,
		},
		{
			name: "client total off by more than a cent",
			mutate: func(r *models.CreateOrderRequest) {
				total := price("20.00")
				r.Total = &total
			},
			code: models.ErrCodePriceMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(true)
			f.menu.On("GetByIDs", mock.Anything, mock.Anything).Return([]models.MenuItem{}, nil).Maybe()
			req := cashRequest()
			tt.mutate(&req)

			order, err := f.service.CreateOrder(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, order)

			var domainErr *models.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_CreateOrder_ClientTotalWithinTolerance(t *testing.T) {
	f := newOrderFixture(false)
	req := cashRequest()
	total := price("26.21")
	req.Total = &total

	f.menu.On("GetByIDs", mock.Anything, []int64{1}).Return([]models.MenuItem{}, nil)
	expectCreate(f.orders, 1)

	order, err := f.service.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	f.dispatcher.Wait()

	assert.True(t, price("26.20").Equal(order.Total))
	assert.Nil(t, order.Items[0].MenuItemID, "unknown menu item reference is dropped")
}

func TestOrderService_CreateOrder_CatalogPrice(t *testing.T) {
	tests := []struct {
		name         string
		verifyPrices bool
		catalog      models.MenuItem
		expectErr    bool
	}{
		{
			name:         "stale price rejected",
			verifyPrices: true,
			catalog:      models.MenuItem{ID: 1, Price: price("12.90"), IsActive: true},
			expectErr:    true,
		},
		{
			name:         "inactive item not checked",
			verifyPrices: true,
			catalog:      models.MenuItem{ID: 1, Price: price("12.90"), IsActive: false},
		},
		{
			name:         "verification disabled",
			verifyPrices: false,
			catalog:      models.MenuItem{ID: 1, Price: price("12.90"), IsActive: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(tt.verifyPrices)
			f.menu.On("GetByIDs", mock.Anything, []int64{1}).Return([]models.MenuItem{tt.catalog}, nil)
			if !tt.expectErr {
				expectCreate(f.orders, 3)
			}

			_, err := f.service.CreateOrder(context.Background(), cashRequest())
			f.dispatcher.Wait()

			if tt.expectErr {
				var domainErr *models.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, models.ErrCodePriceMismatch, domainErr.Code)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOrderService_CreateOrder_ProteinSurcharge(t *testing.T) {
	wok := models.MenuItem{ID: 7, Price: price("10.90"), IsActive: true}

	tests := []struct {
		name      string
		id        models.LooseInt
		protein   string
		quantity  int
		price     string
		total     string
		wantPrice string
		wantTotal string
		wantCode  string
	}{
		{name: "line includes surcharge", id: models.NewLooseInt(7), protein: "shrimp", quantity: 1, price: "12.90", total: "12.90", wantPrice: "12.90", wantTotal: "12.90"},
		{name: "line at base price, total includes surcharge", id: models.NewLooseInt(7), protein: "shrimp", quantity: 1, price: "10.90", total: "12.90", wantPrice: "12.90", wantTotal: "12.90"},
		{name: "line at base price without total", id: models.NewLooseInt(7), protein: "shrimp", quantity: 2, price: "10.90", wantPrice: "12.90", wantTotal: "25.80"},
		{name: "free protein", id: models.NewLooseInt(7), protein: "chicken", quantity: 1, price: "10.90", total: "10.90", wantPrice: "10.90", wantTotal: "10.90"},
		{name: "wrong price with surcharge", id: models.NewLooseInt(7), protein: "shrimp", quantity: 1, price: "11.90", total: "11.90", wantCode: models.ErrCodePriceMismatch},
		{name: "off-catalog line, total includes surcharge", protein: "Shrimp", quantity: 2, price: "10.90", total: "25.80", wantPrice: "12.90", wantTotal: "25.80"},
		{name: "off-catalog line includes surcharge", protein: "shrimp", quantity: 1, price: "12.90", total: "12.90", wantPrice: "12.90", wantTotal: "12.90"},
		{name: "off-catalog total matches neither", protein: "shrimp", quantity: 1, price: "10.90", total: "14.90", wantCode: models.ErrCodePriceMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(true)
			f.menu.On("GetByIDs", mock.Anything, []int64{7}).Return([]models.MenuItem{wok}, nil).Maybe()

			req := cashRequest()
			req.Items = []models.OrderItemRequest{{
				ID:            tt.id,
				Name:          "Wok",
				Quantity:      tt.quantity,
				Price:         price(tt.price),
				ProteinChoice: tt.protein,
			}}
			if tt.total != "" {
				total := price(tt.total)
				req.Total = &total
			}
			if tt.wantCode == "" {
				expectCreate(f.orders, 11)
			}

			order, err := f.service.CreateOrder(context.Background(), req)
			f.dispatcher.Wait()

			if tt.wantCode != "" {
				var domainErr *models.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.wantCode, domainErr.Code)
				f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			require.Len(t, order.Items, 1)
			assert.Equal(t, tt.wantPrice, order.Items[0].Price.StringFixed(2))
			assert.Equal(t, tt.wantTotal, order.Total.StringFixed(2))
		})
	}
}

func TestOrderService_CreateOrder_RetriesOrderNumber(t *testing.T) {
	f := newOrderFixture(false)
	req := cashRequest()
	req.Items = req.Items[1:]

	var numbers []string
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(*models.Order).OrderNumber)
		}).
		Return(models.ErrDuplicate).Once()
	expectCreate(f.orders, 9)

	order, err := f.service.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	f.dispatcher.Wait()

	require.Len(t, numbers, 1)
	assert.NotEqual(t, numbers[0], order.OrderNumber)
}

func TestOrderService_CreateOrder_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newOrderFixture(false)
	req := cashRequest()
	req.Items = req.Items[1:]

	f.orders.On("Create", mock.Anything, mock.Anything).Return(models.ErrDuplicate).Times(orderNumberAttempts)

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrDuplicate)
	f.orders.AssertNumberOfCalls(t, "Create", orderNumberAttempts)
}

func sampleOrder(status models.OrderStatus) *models.Order {
	return &models.Order{
		ID:            5,
		OrderNumber:   "ORD-12345678",
		CustomerName:  "Mari Tamm",
		CustomerEmail: "mari@example.com",
		PaymentMethod: models.PaymentMethodCash,
		Status:        status,
		Total:         price("23.00"),
	}
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name          string
		current       models.OrderStatus
		requested     string
		expectUpdate  bool
		expectErr     error
		expectNotices []string
	}{
		{
			name:          "preparing to ready emails the customer",
			current:       models.OrderStatusPreparing,
			requested:     "ready",
			expectUpdate:  true,
			expectNotices: []string{"order_ready"},
		},
		{
			name:         "pending to preparing is silent",
			current:      models.OrderStatusPending,
			requested:    "preparing",
			expectUpdate: true,
		},
		{
			name:          "manual payment confirmation alerts the kitchen",
			current:       models.OrderStatusPendingPayment,
			requested:     "pending",
			expectUpdate:  true,
			expectNotices: []string{"kitchen_alert"},
		},
		{
			name:      "same status is a no-op",
			current:   models.OrderStatusReady,
			requested: "ready",
		},
		{
			name:      "skipping a stage is rejected",
			current:   models.OrderStatusPending,
			requested: "ready",
			expectErr: models.ErrInvalidTransition,
		},
		{
			name:      "completed is final",
			current:   models.OrderStatusCompleted,
			requested: "pending",
			expectErr: models.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(true)
			ctx := context.Background()

			f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(tt.current), nil)
			if tt.expectUpdate {
				next := models.OrderStatus(tt.requested)
				f.orders.On("UpdateStatus", mock.Anything, int64(5), tt.current, next).
					Return(sampleOrder(next), nil)
			}

			order, err := f.service.UpdateOrderStatus(ctx, 5, tt.requested)
			f.dispatcher.Wait()

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.OrderStatus(tt.requested), order.Status)

			var kinds []string
			for _, c := range f.notifier.Calls() {
				kinds = append(kinds, c.Kind)
			}
			assert.Equal(t, tt.expectNotices, kinds)
			if !tt.expectUpdate {
				f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderService_UpdateOrderStatus_ReadyWithoutEmail(t *testing.T) {
	f := newOrderFixture(true)
	ready := sampleOrder(models.OrderStatusReady)
	ready.CustomerEmail = ""

	f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(models.OrderStatusPreparing), nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(5), models.OrderStatusPreparing, models.OrderStatusReady).Return(ready, nil)

	_, err := f.service.UpdateOrderStatus(context.Background(), 5, "ready")
	require.NoError(t, err)
	f.dispatcher.Wait()

	assert.Empty(t, f.notifier.Calls())
}

func TestOrderService_UpdateOrderStatus_Errors(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		f := newOrderFixture(true)
		_, err := f.service.UpdateOrderStatus(context.Background(), 5, "shipped")
		assert.ErrorIs(t, err, models.ErrInvalidStatus)
		f.orders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderFixture(true)
		f.orders.On("GetByID", mock.Anything, int64(404)).Return(nil, models.ErrNotFound)
		_, err := f.service.UpdateOrderStatus(context.Background(), 404, "ready")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("concurrent change", func(t *testing.T) {
		f := newOrderFixture(true)
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(models.OrderStatusPreparing), nil)
		f.orders.On("UpdateStatus", mock.Anything, int64(5), models.OrderStatusPreparing, models.OrderStatusReady).
			Return(nil, models.ErrStatusChanged)

		_, err := f.service.UpdateOrderStatus(context.Background(), 5, "ready")
		f.dispatcher.Wait()
		assert.ErrorIs(t, err, models.ErrStatusChanged)
		assert.Empty(t, f.notifier.Calls())
	})

	t.Run("deleted after it was read", func(t *testing.T) {
		f := newOrderFixture(true)
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(models.OrderStatusPreparing), nil)
		f.orders.On("UpdateStatus", mock.Anything, int64(5), models.OrderStatusPreparing, models.OrderStatusReady).
			Return(nil, models.ErrNotFound)

		_, err := f.service.UpdateOrderStatus(context.Background(), 5, "ready")
		f.dispatcher.Wait()
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Empty(t, f.notifier.Calls())
	})
}

func TestOrderService_UpdateOrderStatus_NotificationFailureIsSwallowed(t *testing.T) {
	f := newOrderFixture(true)
	f.notifier.err = errors.New("smtp down")

	f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(models.OrderStatusPreparing), nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(5), models.OrderStatusPreparing, models.OrderStatusReady).
		Return(sampleOrder(models.OrderStatusReady), nil)

	order, err := f.service.UpdateOrderStatus(context.Background(), 5, "ready")
	f.dispatcher.Wait()

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, order.Status)
	assert.Len(t, f.notifier.Calls(), 1)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	t.Run("completed order is deleted", func(t *testing.T) {
		f := newOrderFixture(true)
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(models.OrderStatusCompleted), nil)
		f.orders.On("Delete", mock.Anything, int64(5), models.OrderStatusCompleted).Return(nil)

		require.NoError(t, f.service.DeleteOrder(context.Background(), 5))
		f.orders.AssertExpectations(t)
	})

	t.Run("active order is kept", func(t *testing.T) {
		f := newOrderFixture(true)
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(models.OrderStatusReady), nil)

		err := f.service.DeleteOrder(context.Background(), 5)
		assert.ErrorIs(t, err, models.ErrNotDeletable)
		f.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderFixture(true)
		f.orders.On("GetByID", mock.Anything, int64(404)).Return(nil, models.ErrNotFound)

		err := f.service.DeleteOrder(context.Background(), 404)
		assert.ErrorIs(t, err, models.ErrNotFound)
		f.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	t.Run("moves the order to the kitchen", func(t *testing.T) {
		f := newOrderFixture(true)
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(models.OrderStatusPendingPayment), nil)
		f.orders.On("UpdateStatus", mock.Anything, int64(5), models.OrderStatusPendingPayment, models.OrderStatusPending).
			Return(sampleOrder(models.OrderStatusPending), nil)

		order, err := f.service.ConfirmPayment(context.Background(), 5)
		f.dispatcher.Wait()

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		require.Len(t, f.notifier.Calls(), 1)
		assert.Equal(t, "kitchen_alert", f.notifier.Calls()[0].Kind)
	})

	t.Run("replayed event is a no-op", func(t *testing.T) {
		f := newOrderFixture(true)
		f.orders.On("GetByID", mock.Anything, int64(5)).Return(sampleOrder(models.OrderStatusPreparing), nil)

		order, err := f.service.ConfirmPayment(context.Background(), 5)
		f.dispatcher.Wait()

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPreparing, order.Status)
		assert.Empty(t, f.notifier.Calls())
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
