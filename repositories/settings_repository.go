package repositories

import (
	"context"
	"fmt"

	"kuuslauk/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type settingsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewSettingsRepository(pool *pgxpool.Pool, logger zerolog.Logger) SettingsRepository {
	return &settingsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "settings").Logger(),
	}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.SiteSettings, error) {
	query := `
		SELECT logo_url, restaurant_name, address, phone, email, map_link
		FROM site_settings WHERE id = 1
	`

	var s models.SiteSettings
	err := r.pool.QueryRow(ctx, query).Scan(&s.Logo, &s.RestaurantName, &s.Address, &s.Phone, &s.Email, &s.MapLink)
	if err != nil {
		return nil, classify(err)
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s models.SiteSettings) error {
	query := `
		INSERT INTO site_settings (id, logo_url, restaurant_name, address, phone, email, map_link)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			logo_url = EXCLUDED.logo_url,
			restaurant_name = EXCLUDED.restaurant_name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			map_link = EXCLUDED.map_link,
			updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, s.Logo, s.RestaurantName, s.Address, s.Phone, s.Email, s.MapLink); err != nil {
		r.logger.Error().Err(err).Msg("failed to save site settings")
		return fmt.Errorf("failed to save site settings: %w", classify(err))
	}
	return nil
}
