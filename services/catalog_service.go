package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kuuslauk/libs"
	"kuuslauk/models"
	"kuuslauk/repositories"

	"github.com/rs/zerolog"
)

const catalogCachePrefix = "catalog:"

// CatalogService manages categories, menu items and offers. Public reads
// are served through the cache; every write drops the whole catalog cache.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListMenu(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int64, req models.MenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error

	ListOffers(ctx context.Context, filter models.OfferFilter) ([]models.Offer, error)
	GetOffer(ctx context.Context, id int64) (*models.Offer, error)
	CreateOffer(ctx context.Context, req models.OfferRequest) (*models.Offer, error)
	UpdateOffer(ctx context.Context, id int64, req models.OfferRequest) (*models.Offer, error)
	DeleteOffer(ctx context.Context, id int64) error
}

type catalogService struct {
	categories repositories.CategoryRepository
	menu       repositories.MenuRepository
	offers     repositories.OfferRepository
	cache      *libs.Cache
	logger     zerolog.Logger
}

// NewCatalogService accepts nil repositories when no database is
// configured; categories then fall back to the built-in list.
func NewCatalogService(
	categories repositories.CategoryRepository,
	menu repositories.MenuRepository,
	offers repositories.OfferRepository,
	cache *libs.Cache,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		categories: categories,
		menu:       menu,
		offers:     offers,
		cache:      cache,
		logger:     logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if s.categories == nil {
		return models.DefaultCategories(), nil
	}

	key := catalogCachePrefix + "categories"
	var cached []models.Category
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, categories)
	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if s.categories == nil {
		return nil, models.ErrDatabaseUnavailable
	}
	if err := validateCategory(&req); err != nil {
		return nil, err
	}

	cat, err := s.categories.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Int64("category_id", cat.ID).Str("slug", cat.Slug).Msg("category created")
	return cat, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	if s.categories == nil {
		return nil, models.ErrDatabaseUnavailable
	}
	if err := validateCategory(&req); err != nil {
		return nil, err
	}

	cat, err := s.categories.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return cat, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	if s.categories == nil {
		return models.ErrDatabaseUnavailable
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) ListMenu(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	if s.menu == nil {
		return []models.MenuItem{}, nil
	}

	key := fmt.Sprintf("%smenu:%s:%t", catalogCachePrefix, filter.Category, filter.ActiveOnly)
	var cached []models.MenuItem
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.menu.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, items)
	return items, nil
}

func (s *catalogService) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	if s.menu == nil {
		return nil, models.ErrDatabaseUnavailable
	}
	return s.menu.GetByID(ctx, id)
}

func (s *catalogService) CreateMenuItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	if s.menu == nil {
		return nil, models.ErrDatabaseUnavailable
	}
	if err := validateMenuItem(&req); err != nil {
		return nil, err
	}

	item, err := s.menu.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Int64("menu_item_id", item.ID).Str("name", item.Name.En).Msg("menu item created")
	return item, nil
}

func (s *catalogService) UpdateMenuItem(ctx context.Context, id int64, req models.MenuItemRequest) (*models.MenuItem, error) {
	if s.menu == nil {
		return nil, models.ErrDatabaseUnavailable
	}
	if err := validateMenuItem(&req); err != nil {
		return nil, err
	}

	item, err := s.menu.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *catalogService) DeleteMenuItem(ctx context.Context, id int64) error {
	if s.menu == nil {
		return models.ErrDatabaseUnavailable
	}
	if err := s.menu.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) ListOffers(ctx context.Context, filter models.OfferFilter) ([]models.Offer, error) {
	if s.offers == nil {
		return []models.Offer{}, nil
	}

	key := fmt.Sprintf("%soffers:%s:%s", catalogCachePrefix, filter.ActiveOn, filter.Type)
	var cached []models.Offer
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	offers, err := s.offers.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, offers)
	return offers, nil
}

func (s *catalogService) GetOffer(ctx context.Context, id int64) (*models.Offer, error) {
	if s.offers == nil {
		return nil, models.ErrDatabaseUnavailable
	}
	return s.offers.GetByID(ctx, id)
}

func (s *catalogService) CreateOffer(ctx context.Context, req models.OfferRequest) (*models.Offer, error) {
	if s.offers == nil {
		return nil, models.ErrDatabaseUnavailable
	}
	if err := validateOffer(&req); err != nil {
		return nil, err
	}

	offer, err := s.offers.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Int64("offer_id", offer.ID).Str("type", offer.Type).Msg("offer created")
	return offer, nil
}

func (s *catalogService) UpdateOffer(ctx context.Context, id int64, req models.OfferRequest) (*models.Offer, error) {
	if s.offers == nil {
		return nil, models.ErrDatabaseUnavailable
	}
	if err := validateOffer(&req); err != nil {
		return nil, err
	}

	offer, err := s.offers.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return offer, nil
}

func (s *catalogService) DeleteOffer(ctx context.Context, id int64) error {
	if s.offers == nil {
		return models.ErrDatabaseUnavailable
	}
	if err := s.offers.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	s.cache.InvalidatePrefix(ctx, catalogCachePrefix)
}

func validateCategory(req *models.CategoryRequest) error {
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if req.Slug == "" {
		return models.InvalidInput("Slug is required")
	}
	if !req.Name.Complete() {
		return models.InvalidInput("Names in all languages are required")
	}
	return nil
}

func validateMenuItem(req *models.MenuItemRequest) error {
	if !req.Name.Complete() {
		return models.InvalidInput("Names in all languages are required")
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		return models.InvalidInput("Category is required")
	}
	if req.Price.IsNegative() {
		return models.InvalidInput("Price must not be negative")
	}
	if req.Description != nil && req.Description.IsZero() {
		req.Description = nil
	}
	return nil
}

func validateOffer(req *models.OfferRequest) error {
	if strings.TrimSpace(req.Title.En) == "" {
		return models.InvalidInput("Title is required")
	}
	if req.Type == "" {
		req.Type = "daily"
	}
	if req.OriginalPrice.IsNegative() || req.DiscountPrice.IsNegative() {
		return models.InvalidInput("Prices must not be negative")
	}

	var from, until time.Time
	var err error
	if req.ValidFrom != "" {
		if from, err = time.Parse(dateLayout, req.ValidFrom); err != nil {
			return models.InvalidInput("validFrom must be a date in YYYY-MM-DD format")
		}
	}
	if req.ValidUntil != "" {
		if until, err = time.Parse(dateLayout, req.ValidUntil); err != nil {
			return models.InvalidInput("validUntil must be a date in YYYY-MM-DD format")
		}
	}
	if !from.IsZero() && !until.IsZero() && until.Before(from) {
		return models.InvalidInput("validUntil must not be before validFrom")
	}
	return nil
}
