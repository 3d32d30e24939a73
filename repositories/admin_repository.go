package repositories

import (
	"context"
	"fmt"
	"strings"

	"kuuslauk/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type adminRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewAdminRepository(pool *pgxpool.Pool, logger zerolog.Logger) AdminRepository {
	return &adminRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "admin").Logger(),
	}
}

// FindByEmail matches case-insensitively; emails are stored lower case.
func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM admin_users WHERE email = $1 LIMIT 1`

	var u models.AdminUser
	err := r.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *adminRepository) FindByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM admin_users WHERE id = $1`

	var u models.AdminUser
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *adminRepository) Create(ctx context.Context, u *models.AdminUser) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	query := `
		INSERT INTO admin_users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query, u.Email, u.Name, u.PasswordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
		r.logger.Error().Err(err).Str("email", u.Email).Msg("failed to create admin user")
		return fmt.Errorf("failed to create admin user: %w", classify(err))
	}
	return nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE admin_users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		r.logger.Error().Err(err).Int64("admin_id", id).Msg("failed to update password")
		return fmt.Errorf("failed to update password: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
