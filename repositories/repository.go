package repositories

import (
	"context"
	"errors"
	"fmt"

	"kuuslauk/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepository persists orders together with their line items.
type OrderRepository interface {
	// Create inserts the order and every line item in one transaction and
	// fills in the generated ids and timestamps.
	Create(ctx context.Context, order *models.Order) error

	// List returns all orders newest first, items included.
	List(ctx context.Context) ([]models.Order, error)

	GetByID(ctx context.Context, id int64) (*models.Order, error)

	// UpdateStatus moves the order from one status to another. It returns
	// models.ErrStatusChanged when the order is no longer in status from and
	// models.ErrNotFound when it no longer exists.
	UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (*models.Order, error)

	SetPaymentSession(ctx context.Context, id int64, sessionID string) error

	// Delete removes the order only while it is still in the given status.
	Delete(ctx context.Context, id int64, status models.OrderStatus) error
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	List(ctx context.Context) ([]models.Reservation, error)
	GetByID(ctx context.Context, id int64) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.ReservationStatus) (*models.Reservation, error)
	Delete(ctx context.Context, id int64, status models.ReservationStatus) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type MenuRepository interface {
	List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.MenuItem, error)
	Create(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error)
	Update(ctx context.Context, id int64, req models.MenuItemRequest) (*models.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}

type OfferRepository interface {
	List(ctx context.Context, filter models.OfferFilter) ([]models.Offer, error)
	GetByID(ctx context.Context, id int64) (*models.Offer, error)
	Create(ctx context.Context, req models.OfferRequest) (*models.Offer, error)
	Update(ctx context.Context, id int64, req models.OfferRequest) (*models.Offer, error)
	Delete(ctx context.Context, id int64) error
}

type SettingsRepository interface {
	// Get returns models.ErrNotFound when the settings row was never saved.
	Get(ctx context.Context) (*models.SiteSettings, error)
	Upsert(ctx context.Context, settings models.SiteSettings) error
}

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id int64) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
	pgStringTooLong       = "22001"
)

// staleUpdate explains why a conditional update matched no rows: the record
// is gone, or its status moved on. table is always a package constant.
func staleUpdate(ctx context.Context, pool *pgxpool.Pool, table string, id int64) error {
	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return classify(err)
	}
	if !exists {
		return models.ErrNotFound
	}
	return models.ErrStatusChanged
}

// classify translates driver errors into the sentinel errors the service
// layer understands. Unknown errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", models.ErrDatabaseUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", models.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return models.InvalidInput("Referenced record does not exist")
		case pgCheckViolation, pgNumericOutOfRange:
			return models.InvalidInput("Value out of allowed range")
		case pgStringTooLong:
			return models.InvalidInput("Value is too long")
		}
	}

	return err
}

// nullIfEmpty stores empty optional text as NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
