package repositories

import (
	"context"
	"errors"
	"fmt"

	"kuuslauk/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `
	id, order_number, customer_name, COALESCE(customer_phone, ''), COALESCE(customer_email, ''),
	total, pickup_time, payment_method, COALESCE(notes, ''), status,
	COALESCE(payment_session_id, ''), notified_at, created_at, updated_at`

const orderItemColumns = `
	id, order_id, menu_item_id, item_name, quantity, price,
	COALESCE(protein_choice, ''), COALESCE(special_notes, '')`

type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", classify(err))
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (
			order_number, customer_name, customer_phone, customer_email,
			total, pickup_time, payment_method, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		order.OrderNumber, order.CustomerName, nullIfEmpty(order.CustomerPhone), nullIfEmpty(order.CustomerEmail),
		order.Total, order.PickupTime, order.PaymentMethod, nullIfEmpty(order.Notes), order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", classify(err))
	}

	if err := r.createItems(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to commit order")
		return fmt.Errorf("failed to commit order: %w", classify(err))
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Int("items", len(order.Items)).
		Msg("order created successfully")

	return nil
}

func (r *orderRepository) createItems(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	if len(order.Items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, menu_item_id, item_name, quantity, price, protein_choice, special_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		batch.Queue(query, order.ID, item.MenuItemID, item.Name, item.Quantity, item.Price,
			nullIfEmpty(item.ProteinChoice), nullIfEmpty(item.Notes))
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range order.Items {
		if err := results.QueryRow().Scan(&order.Items[i].ID); err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", order.ID).
				Str("item", order.Items[i].Name).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", classify(err))
		}
		order.Items[i].OrderID = order.ID
	}

	return results.Close()
}

func (r *orderRepository) List(ctx context.Context) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", classify(err))
	}
	defer rows.Close()

	orders := []models.Order{}
	index := map[int64]int{}
	ids := []int64{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		index[order.ID] = len(orders)
		ids = append(ids, order.ID)
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", classify(err))
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}

	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		err = classify(err)
		if !errors.Is(err, models.ErrNotFound) {
			r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		}
		return nil, err
	}

	if order.Items, err = r.itemsFor(ctx, []int64{id}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $3,
		    notified_at = CASE WHEN $3 = 'ready' THEN NOW() ELSE notified_at END,
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + orderColumns

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id, from, to))
	if err != nil {
		err = classify(err)
		if errors.Is(err, models.ErrNotFound) {
			return nil, staleUpdate(ctx, r.pool, "orders", id)
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if order.Items, err = r.itemsFor(ctx, []int64{id}); err != nil {
		return nil, err
	}

	r.logger.Info().
		Int64("order_id", id).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("order status updated")

	return order, nil
}

func (r *orderRepository) SetPaymentSession(ctx context.Context, id int64, sessionID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET payment_session_id = $2, updated_at = NOW() WHERE id = $1`, id, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to store payment session")
		return fmt.Errorf("failed to store payment session: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64, status models.OrderStatus) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND status = $2`, id, status)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrStatusChanged
	}
	return nil
}

func (r *orderRepository) itemsFor(ctx context.Context, orderIDs []int64) ([]models.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, id`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", classify(err))
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Quantity,
			&item.Price, &item.ProteinChoice, &item.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", classify(err))
	}
	return items, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail,
		&o.Total, &o.PickupTime, &o.PaymentMethod, &o.Notes, &o.Status,
		&o.PaymentSessionID, &o.NotifiedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Items = []models.OrderItem{}
	return &o, nil
}
