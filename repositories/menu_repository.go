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

const menuColumns = `
	id, name_en, name_et, name_ru, description_en, description_et, description_ru,
	price, category_slug, COALESCE(image_url, ''), is_spicy, is_extra_spicy, is_vegan,
	is_active, sort_order`

type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

func (r *menuRepository) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category_slug = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}

	query := `SELECT ` + menuColumns + ` FROM menu_items`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY category_slug, sort_order ASC, id ASC`

	return r.query(ctx, query, args...)
}

func (r *menuRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, err := scanMenuItem(r.pool.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return item, nil
}

func (r *menuRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}
	return r.query(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = ANY($1)`, ids)
}

func (r *menuRepository) Create(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	query := `
		INSERT INTO menu_items (
			name_en, name_et, name_ru, description_en, description_et, description_ru,
			price, category_slug, image_url, is_spicy, is_extra_spicy, is_vegan, is_active, sort_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + menuColumns

	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, menuArgs(req)...))
	if err != nil {
		r.logger.Error().Err(err).Str("name", req.Name.En).Msg("failed to create menu item")
		return nil, fmt.Errorf("failed to create menu item: %w", classify(err))
	}
	return item, nil
}

func (r *menuRepository) Update(ctx context.Context, id int64, req models.MenuItemRequest) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items SET
			name_en = $1, name_et = $2, name_ru = $3,
			description_en = $4, description_et = $5, description_ru = $6,
			price = $7, category_slug = $8, image_url = $9,
			is_spicy = $10, is_extra_spicy = $11, is_vegan = $12,
			is_active = $13, sort_order = $14, updated_at = NOW()
		WHERE id = $15
		RETURNING ` + menuColumns

	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, append(menuArgs(req), id)...))
	if err != nil {
		return nil, classify(err)
	}
	return item, nil
}

func (r *menuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to delete menu item")
		return fmt.Errorf("failed to delete menu item: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *menuRepository) query(ctx context.Context, query string, args ...any) ([]models.MenuItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", classify(err))
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", classify(err))
	}
	return items, nil
}

func menuArgs(req models.MenuItemRequest) []any {
	var desc models.Localized
	if req.Description != nil {
		desc = *req.Description
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return []any{
		req.Name.En, req.Name.Et, req.Name.Ru,
		nullIfEmpty(desc.En), nullIfEmpty(desc.Et), nullIfEmpty(desc.Ru),
		req.Price, req.Category, nullIfEmpty(req.Image),
		req.Spicy, req.ExtraSpicy, req.Vegan, active, req.SortOrder,
	}
}

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var (
		m              models.MenuItem
		descEn, descEt *string
		descRu         *string
	)
	err := row.Scan(
		&m.ID, &m.Name.En, &m.Name.Et, &m.Name.Ru, &descEn, &descEt, &descRu,
		&m.Price, &m.Category, &m.Image, &m.Spicy, &m.ExtraSpicy, &m.Vegan,
		&m.IsActive, &m.SortOrder,
	)
	if err != nil {
		return nil, err
	}

	if descEn != nil {
		m.Description = &models.Localized{En: *descEn}
		if descEt != nil {
			m.Description.Et = *descEt
		}
		if descRu != nil {
			m.Description.Ru = *descRu
		}
	}
	return &m, nil
}
