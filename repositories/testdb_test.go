package repositories

import (
	"context"
	"testing"
	"time"

	"kuuslauk/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts PostgreSQL in a container and applies the embedded
// migrations to it.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("kuuslauk"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(connStr, zerolog.Nop()))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func truncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE order_items, orders, reservations, menu_items, categories,
		         offers, site_settings, admin_users RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)
}

func seedMenu(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO categories (slug, name_en, name_et, name_ru, sort_order) VALUES
			('wok', 'Wok Dishes', 'Wok road', 'Вок блюда', 1),
			('kebab', 'Kebab', 'Kebab', 'Кебаб', 2);
		INSERT INTO menu_items (name_en, name_et, name_ru, price, category_slug, sort_order, is_active) VALUES
			('Chicken Wok', 'Kanawok', 'Вок с курицей', 9.50, 'wok', 1, true),
			('Beef Kebab', 'Veisekebab', 'Кебаб из говядины', 11.00, 'kebab', 1, true),
			('Old Special', 'Vana eri', 'Старое', 7.00, 'wok', 2, false);
	`)
	require.NoError(t, err)
}
