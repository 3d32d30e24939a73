package services

import (
	"context"
	"sync"
	"time"

	"kuuslauk/libs"
	"kuuslauk/models"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) SetPaymentSession(ctx context.Context, id int64, sessionID string) error {
	args := m.Called(ctx, id, sessionID)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64, status models.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, r *models.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) List(ctx context.Context) ([]models.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, from, to models.ReservationStatus) (*models.Reservation, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id int64, status models.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Create(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Update(ctx context.Context, id int64, req models.MenuItemRequest) (*models.MenuItem, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) List(ctx context.Context, filter models.OfferFilter) ([]models.Offer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetByID(ctx context.Context, id int64) (*models.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Offer), args.Error(1)
}

func (m *MockOfferRepository) Create(ctx context.Context, req models.OfferRequest) (*models.Offer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Offer), args.Error(1)
}

func (m *MockOfferRepository) Update(ctx context.Context, id int64, req models.OfferRequest) (*models.Offer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Offer), args.Error(1)
}

func (m *MockOfferRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*models.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings models.SiteSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) Create(ctx context.Context, user *models.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAdminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckout(ctx context.Context, in libs.CheckoutInput) (*libs.CheckoutSession, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*libs.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) ParseWebhook(payload []byte, signature string) (*libs.PaymentEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*libs.PaymentEvent), args.Error(1)
}

// notification is one call recorded by recordingNotifier.
type notification struct {
	Kind string
	To   string
}

// recordingNotifier records every call and returns err for each of them.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
	err   error
}

func (n *recordingNotifier) record(kind, to string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notification{Kind: kind, To: to})
	return n.err
}

func (n *recordingNotifier) Calls() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.calls...)
}

func (n *recordingNotifier) KitchenAlert(_ context.Context, order models.Order) error {
	return n.record("kitchen_alert", order.OrderNumber)
}

func (n *recordingNotifier) OrderReady(_ context.Context, order models.Order, _ models.SiteSettings) error {
	return n.record("order_ready", order.CustomerEmail)
}

func (n *recordingNotifier) ReservationReceived(_ context.Context, r models.Reservation) error {
	return n.record("reservation_received", r.Email)
}

func (n *recordingNotifier) ReservationConfirmed(_ context.Context, r models.Reservation, _ models.SiteSettings) error {
	return n.record("reservation_confirmed", r.Email)
}

func (n *recordingNotifier) ReservationCancelled(_ context.Context, r models.Reservation, _ models.SiteSettings) error {
	return n.record("reservation_cancelled", r.Email)
}

func (n *recordingNotifier) PasswordReset(_ context.Context, admin models.AdminUser, resetURL string, _ time.Duration) error {
	return n.record("password_reset", admin.Email+" "+resetURL)
}

// fakeMailer captures messages sent through EmailNotifier.
type fakeMailer struct {
	mu   sync.Mutex
	sent []libs.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg libs.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

// staticSettings serves fixed site settings.
type staticSettings struct {
	settings models.SiteSettings
}

func (s staticSettings) Get(context.Context) models.SiteSettings { return s.settings }

func (s staticSettings) Update(context.Context, models.UpdateSettingsRequest) (*models.SiteSettings, error) {
	return nil, models.ErrDatabaseUnavailable
}
