package repositories

import (
	"context"
	"fmt"

	"kuuslauk/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const categoryColumns = `id, slug, name_en, name_et, name_ru, sort_order`

type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", classify(err))
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", classify(err))
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	query := `
		INSERT INTO categories (slug, name_en, name_et, name_ru, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + categoryColumns

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, req.Slug, req.Name.En, req.Name.Et, req.Name.Ru, req.SortOrder))
	if err != nil {
		r.logger.Error().Err(err).Str("slug", req.Slug).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", classify(err))
	}
	return cat, nil
}

func (r *categoryRepository) Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	query := `
		UPDATE categories
		SET slug = $2, name_en = $3, name_et = $4, name_ru = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + categoryColumns

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, id, req.Slug, req.Name.En, req.Name.Et, req.Name.Ru, req.SortOrder))
	if err != nil {
		return nil, classify(err)
	}
	return cat, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Slug, &c.Name.En, &c.Name.Et, &c.Name.Ru, &c.SortOrder); err != nil {
		return nil, err
	}
	return &c, nil
}
