package repositories

import (
	"context"
	"testing"

	"kuuslauk/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMenuRepository(pool, zerolog.Nop())
	ctx := context.Background()

	t.Run("List filters by category and active flag", func(t *testing.T) {
		truncateAll(t, pool)
		seedMenu(t, pool)

		all, err := repo.List(ctx, models.MenuFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		active, err := repo.List(ctx, models.MenuFilter{ActiveOnly: true})
		require.NoError(t, err)
		assert.Len(t, active, 2)

		wok, err := repo.List(ctx, models.MenuFilter{Category: "wok", ActiveOnly: true})
		require.NoError(t, err)
		require.Len(t, wok, 1)
		assert.Equal(t, "Chicken Wok", wok[0].Name.En)
		assert.True(t, decimal.RequireFromString("9.5").Equal(wok[0].Price))
		assert.Nil(t, wok[0].Description)
	})

	t.Run("GetByIDs", func(t *testing.T) {
		truncateAll(t, pool)
		seedMenu(t, pool)

		items, err := repo.GetByIDs(ctx, []int64{1, 2, 99})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("Create with unknown category is invalid input", func(t *testing.T) {
		truncateAll(t, pool)

		_, err := repo.Create(ctx, models.MenuItemRequest{
			Name:     models.Localized{En: "X", Et: "X", Ru: "X"},
			Price:    decimal.NewFromInt(5),
			Category: "missing",
		})
		var domainErr *models.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, models.ErrCodeInvalidInput, domainErr.Code)
	})

	t.Run("Update and Delete", func(t *testing.T) {
		truncateAll(t, pool)
		seedMenu(t, pool)

		inactive := false
		updated, err := repo.Update(ctx, 1, models.MenuItemRequest{
			Name:        models.Localized{En: "Chicken Wok XL", Et: "Kanawok XL", Ru: "Вок XL"},
			Description: &models.Localized{En: "Bigger", Et: "Suurem", Ru: "Больше"},
			Price:       decimal.RequireFromString("12.90"),
			Category:    "wok",
			IsActive:    &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, "Chicken Wok XL", updated.Name.En)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "Suurem", updated.Description.Et)
		assert.False(t, updated.IsActive)

		_, err = repo.Update(ctx, 999, models.MenuItemRequest{Name: updated.Name, Category: "wok"})
		assert.ErrorIs(t, err, models.ErrNotFound)

		require.NoError(t, repo.Delete(ctx, 1))
		assert.ErrorIs(t, repo.Delete(ctx, 1), models.ErrNotFound)
	})
}

func TestCategoryRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCategoryRepository(pool, zerolog.Nop())
	ctx := context.Background()
	truncateAll(t, pool)

	created, err := repo.Create(ctx, models.CategoryRequest{
		Slug: "sides", Name: models.Localized{En: "Sides", Et: "Lisandid", Ru: "Гарниры"}, SortOrder: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "sides", created.Slug)

	_, err = repo.Create(ctx, models.CategoryRequest{Slug: "sides", Name: created.Name})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
}

func TestOfferRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOfferRepository(pool, zerolog.Nop())
	ctx := context.Background()
	truncateAll(t, pool)

	_, err := repo.Create(ctx, models.OfferRequest{
		Title:         models.Localized{En: "Lunch", Et: "Lõuna", Ru: "Обед"},
		OriginalPrice: decimal.RequireFromString("10"),
		DiscountPrice: decimal.RequireFromString("7.5"),
		Type:          "daily",
		ValidFrom:     "2026-01-01",
		ValidUntil:    "2026-01-31",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, models.OfferRequest{
		Title: models.Localized{En: "Weekend"}, Type: "weekly",
	})
	require.NoError(t, err)

	inWindow, err := repo.List(ctx, models.OfferFilter{ActiveOn: "2026-01-15"})
	require.NoError(t, err)
	assert.Len(t, inWindow, 2)

	outOfWindow, err := repo.List(ctx, models.OfferFilter{ActiveOn: "2026-02-15"})
	require.NoError(t, err)
	require.Len(t, outOfWindow, 1)
	assert.Equal(t, "weekly", outOfWindow[0].Type)

	daily, err := repo.List(ctx, models.OfferFilter{Type: "daily"})
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, "2026-01-01", daily[0].ValidFrom)
	assert.True(t, decimal.RequireFromString("7.5").Equal(daily[0].DiscountPrice))
}

func TestSettingsRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSettingsRepository(pool, zerolog.Nop())
	ctx := context.Background()
	truncateAll(t, pool)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, models.ErrNotFound)

	settings := models.SiteSettings{RestaurantName: "KÜÜSLAUK", Address: "Sadama tn 7", Phone: "5424 0020", Email: "info@kuuslauk.ee", MapLink: "https://maps"}
	require.NoError(t, repo.Upsert(ctx, settings))

	settings.Phone = "5555 0000"
	require.NoError(t, repo.Upsert(ctx, settings))

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, *stored)
}

func TestAdminRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewAdminRepository(pool, zerolog.Nop())
	ctx := context.Background()
	truncateAll(t, pool)

	user := &models.AdminUser{Email: " Admin@Kuuslauk.ee ", Name: "Admin", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "admin@kuuslauk.ee", user.Email)

	found, err := repo.FindByEmail(ctx, "ADMIN@kuuslauk.ee")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))
	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)

	_, err = repo.FindByEmail(ctx, "nobody@kuuslauk.ee")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
