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

const reservationColumns = `
	id, name, email, COALESCE(phone, ''), to_char(date, 'YYYY-MM-DD'), COALESCE(time, ''),
	guests, COALESCE(menu, ''), COALESCE(notes, ''), status, created_at, updated_at`

type reservationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewReservationRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReservationRepository {
	return &reservationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "reservation").Logger(),
	}
}

func (r *reservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	query := `
		INSERT INTO reservations (name, email, phone, date, time, guests, menu, notes, status)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		res.Name, res.Email, nullIfEmpty(res.Phone), res.Date, nullIfEmpty(res.Time),
		res.Guests, nullIfEmpty(res.Menu), nullIfEmpty(res.Notes), res.Status,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", res.Email).Msg("failed to create reservation")
		return fmt.Errorf("failed to create reservation: %w", classify(err))
	}

	return nil
}

func (r *reservationRepository) List(ctx context.Context) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reservations")
		return nil, fmt.Errorf("failed to query reservations: %w", classify(err))
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservations: %w", classify(err))
	}
	return reservations, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, from, to models.ReservationStatus) (*models.Reservation, error) {
	query := `
		UPDATE reservations SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + reservationColumns

	res, err := scanReservation(r.pool.QueryRow(ctx, query, id, from, to))
	if err != nil {
		err = classify(err)
		if errors.Is(err, models.ErrNotFound) {
			return nil, staleUpdate(ctx, r.pool, "reservations", id)
		}
		r.logger.Error().Err(err).Int64("reservation_id", id).Msg("failed to update reservation status")
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	r.logger.Info().
		Int64("reservation_id", id).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("reservation status updated")

	return res, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id int64, status models.ReservationStatus) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1 AND status = $2`, id, status)
	if err != nil {
		r.logger.Error().Err(err).Int64("reservation_id", id).Msg("failed to delete reservation")
		return fmt.Errorf("failed to delete reservation: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrStatusChanged
	}
	return nil
}

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var res models.Reservation
	err := row.Scan(
		&res.ID, &res.Name, &res.Email, &res.Phone, &res.Date, &res.Time,
		&res.Guests, &res.Menu, &res.Notes, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
