package repositories

import (
	"context"
	"fmt"
	"strings"

	"kuuslauk/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const offerColumns = `
	id, title_en, title_et, title_ru, description_en, description_et, description_ru,
	original_price, discount_price, offer_type,
	COALESCE(to_char(valid_from, 'YYYY-MM-DD'), ''), COALESCE(to_char(valid_until, 'YYYY-MM-DD'), ''),
	COALESCE(image_url, ''), is_active`

type offerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewOfferRepository(pool *pgxpool.Pool, logger zerolog.Logger) OfferRepository {
	return &offerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "offer").Logger(),
	}
}

// List applies the date window only when filter.ActiveOn is set; offers with
// an open-ended window count as valid on that side.
func (r *offerRepository) List(ctx context.Context, filter models.OfferFilter) ([]models.Offer, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.ActiveOn != "" {
		args = append(args, filter.ActiveOn)
		n := len(args)
		conditions = append(conditions,
			"is_active = true",
			fmt.Sprintf("(valid_from IS NULL OR valid_from <= $%d::date)", n),
			fmt.Sprintf("(valid_until IS NULL OR valid_until >= $%d::date)", n),
		)
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("offer_type = $%d", len(args)))
	}

	query := `SELECT ` + offerColumns + ` FROM offers`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query offers")
		return nil, fmt.Errorf("failed to query offers: %w", classify(err))
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, *offer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", classify(err))
	}
	return offers, nil
}

func (r *offerRepository) GetByID(ctx context.Context, id int64) (*models.Offer, error) {
	offer, err := scanOffer(r.pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return offer, nil
}

func (r *offerRepository) Create(ctx context.Context, req models.OfferRequest) (*models.Offer, error) {
	query := `
		INSERT INTO offers (
			title_en, title_et, title_ru, description_en, description_et, description_ru,
			original_price, discount_price, offer_type, valid_from, valid_until, image_url, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::date, $11::date, $12, $13)
		RETURNING ` + offerColumns

	offer, err := scanOffer(r.pool.QueryRow(ctx, query, offerArgs(req)...))
	if err != nil {
		r.logger.Error().Err(err).Str("title", req.Title.En).Msg("failed to create offer")
		return nil, fmt.Errorf("failed to create offer: %w", classify(err))
	}
	return offer, nil
}

func (r *offerRepository) Update(ctx context.Context, id int64, req models.OfferRequest) (*models.Offer, error) {
	query := `
		UPDATE offers SET
			title_en = $1, title_et = $2, title_ru = $3,
			description_en = $4, description_et = $5, description_ru = $6,
			original_price = $7, discount_price = $8, offer_type = $9,
			valid_from = $10::date, valid_until = $11::date, image_url = $12,
			is_active = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING ` + offerColumns

	offer, err := scanOffer(r.pool.QueryRow(ctx, query, append(offerArgs(req), id)...))
	if err != nil {
		return nil, classify(err)
	}
	return offer, nil
}

func (r *offerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("offer_id", id).Msg("failed to delete offer")
		return fmt.Errorf("failed to delete offer: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func offerArgs(req models.OfferRequest) []any {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return []any{
		req.Title.En, req.Title.Et, req.Title.Ru,
		req.Description.En, req.Description.Et, req.Description.Ru,
		req.OriginalPrice, req.DiscountPrice, req.Type,
		nullIfEmpty(req.ValidFrom), nullIfEmpty(req.ValidUntil), nullIfEmpty(req.Image), active,
	}
}

func scanOffer(row pgx.Row) (*models.Offer, error) {
	var o models.Offer
	err := row.Scan(
		&o.ID, &o.Title.En, &o.Title.Et, &o.Title.Ru,
		&o.Description.En, &o.Description.Et, &o.Description.Ru,
		&o.OriginalPrice, &o.DiscountPrice, &o.Type,
		&o.ValidFrom, &o.ValidUntil, &o.Image, &o.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
