package services

import (
	"context"
	"testing"

	"kuuslauk/config"
	"kuuslauk/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fullName = models.Localized{En: "Chicken Wok", Et: "Kana wok", Ru: "Вок с курицей"}

func TestCatalogService_WithoutDatabase(t *testing.T) {
	service := NewCatalogService(nil, nil, nil, nil, zerolog.Nop())
	ctx := context.Background()

	categories, err := service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategories(), categories)

	menu, err := service.ListMenu(ctx, models.MenuFilter{})
	require.NoError(t, err)
	assert.Empty(t, menu)
	assert.NotNil(t, menu)

	offers, err := service.ListOffers(ctx, models.OfferFilter{})
	require.NoError(t, err)
	assert.Empty(t, offers)

	_, err = service.CreateMenuItem(ctx, models.MenuItemRequest{Name: fullName, Category: "wok"})
	assert.ErrorIs(t, err, models.ErrDatabaseUnavailable)
	assert.ErrorIs(t, service.DeleteCategory(ctx, 1), models.ErrDatabaseUnavailable)
}

func TestCatalogService_CreateMenuItem(t *testing.T) {
	tests := []struct {
		name      string
		req       models.MenuItemRequest
		expectErr bool
	}{
		{
			name: "valid item",
			req:  models.MenuItemRequest{Name: fullName, Category: " wok ", Price: price("11.50")},
		},
		{
			name:      "missing translation",
			req:       models.MenuItemRequest{Name: models.Localized{En: "Chicken Wok"}, Category: "wok", Price: price("11.50")},
			expectErr: true,
		},
		{
			name:      "negative price",
			req:       models.MenuItemRequest{Name: fullName, Category: "wok", Price: price("-1")},
			expectErr: true,
		},
		{
			name:      "missing category",
			req:       models.MenuItemRequest{Name: fullName, Price: price("1")},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := new(MockMenuRepository)
			service := NewCatalogService(nil, menu, nil, nil, zerolog.Nop())

			if !tt.expectErr {
				menu.On("Create", mock.Anything, mock.MatchedBy(func(r models.MenuItemRequest) bool {
					return r.Category == "wok" && r.Description == nil
				})).Return(&models.MenuItem{ID: 4, Name: fullName, Category: "wok"}, nil)
			}

			item, err := service.CreateMenuItem(context.Background(), tt.req)
			if tt.expectErr {
				var domainErr *models.DomainError
				require.ErrorAs(t, err, &domainErr)
				menu.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(4), item.ID)
		})
	}
}

func TestCatalogService_Categories(t *testing.T) {
	categories := new(MockCategoryRepository)
	service := NewCatalogService(categories, nil, nil, nil, zerolog.Nop())
	ctx := context.Background()

	categories.On("List", mock.Anything).Return([]models.Category{{ID: 1, Slug: "wok"}}, nil)
	categories.On("Create", mock.Anything, models.CategoryRequest{Slug: "soups", Name: fullName}).
		Return(&models.Category{ID: 9, Slug: "soups"}, nil)

	list, err := service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	created, err := service.CreateCategory(ctx, models.CategoryRequest{Slug: " Soups ", Name: fullName})
	require.NoError(t, err)
	assert.Equal(t, "soups", created.Slug)

	_, err = service.CreateCategory(ctx, models.CategoryRequest{Slug: "x"})
	var domainErr *models.DomainError
	assert.ErrorAs(t, err, &domainErr)
}

func TestCatalogService_CreateOffer_Validation(t *testing.T) {
	title := models.Localized{En: "Lunch deal"}

	tests := []struct {
		name      string
		req       models.OfferRequest
		expectErr bool
	}{
		{name: "open ended", req: models.OfferRequest{Title: title}},
		{name: "window", req: models.OfferRequest{Title: title, ValidFrom: "2025-06-01", ValidUntil: "2025-06-30"}},
		{name: "missing title", req: models.OfferRequest{}, expectErr: true},
		{name: "bad date", req: models.OfferRequest{Title: title, ValidFrom: "June 1"}, expectErr: true},
		{name: "reversed window", req: models.OfferRequest{Title: title, ValidFrom: "2025-06-30", ValidUntil: "2025-06-01"}, expectErr: true},
		{name: "negative price", req: models.OfferRequest{Title: title, DiscountPrice: price("-2")}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers := new(MockOfferRepository)
			service := NewCatalogService(nil, nil, offers, nil, zerolog.Nop())
			offers.On("Create", mock.Anything, mock.MatchedBy(func(r models.OfferRequest) bool {
				return r.Type == "daily"
			})).Return(&models.Offer{ID: 1, Type: "daily"}, nil).Maybe()

			_, err := service.CreateOffer(context.Background(), tt.req)
			if tt.expectErr {
				assert.Error(t, err)
				offers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSettingsService(t *testing.T) {
	defaults := DefaultSiteSettings(config.RestaurantConfig{Name: "KÜÜSLAUK", Address: "Sadama tn 7", Phone: "5424 0020"})
	ctx := context.Background()

	t.Run("defaults without database", func(t *testing.T) {
		service := NewSettingsService(nil, defaults, nil, zerolog.Nop())
		assert.Equal(t, defaults, service.Get(ctx))

		_, err := service.Update(ctx, models.UpdateSettingsRequest{})
		assert.ErrorIs(t, err, models.ErrDatabaseUnavailable)
	})

	t.Run("defaults when row missing or unreadable", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("Get", mock.Anything).Return(nil, models.ErrDatabaseUnavailable)
		service := NewSettingsService(repo, defaults, nil, zerolog.Nop())

		assert.Equal(t, defaults, service.Get(ctx))
	})

	t.Run("partial update merges over defaults", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		phone := "+372 600 0000"
		expected := defaults
		expected.Phone = phone

		repo.On("Get", mock.Anything).Return(nil, models.ErrNotFound)
		repo.On("Upsert", mock.Anything, expected).Return(nil)
		service := NewSettingsService(repo, defaults, nil, zerolog.Nop())

		updated, err := service.Update(ctx, models.UpdateSettingsRequest{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, expected, *updated)
		repo.AssertExpectations(t)
	})
}
