package services

import (
	"context"
	"errors"

	"kuuslauk/config"
	"kuuslauk/libs"
	"kuuslauk/models"
	"kuuslauk/repositories"

	"github.com/rs/zerolog"
)

const settingsCacheKey = "settings:site"

type SettingsService interface {
	// Get never fails: a missing row, a missing database or a read error
	// all fall back to the configured defaults.
	Get(ctx context.Context) models.SiteSettings
	Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.SiteSettings, error)
}

type settingsService struct {
	repo     repositories.SettingsRepository
	defaults models.SiteSettings
	cache    *libs.Cache
	logger   zerolog.Logger
}

// NewSettingsService accepts a nil repository when no database is configured.
func NewSettingsService(repo repositories.SettingsRepository, defaults models.SiteSettings, cache *libs.Cache, logger zerolog.Logger) SettingsService {
	return &settingsService{
		repo:     repo,
		defaults: defaults,
		cache:    cache,
		logger:   logger.With().Str("service", "settings").Logger(),
	}
}

func DefaultSiteSettings(cfg config.RestaurantConfig) models.SiteSettings {
	return models.SiteSettings{
		RestaurantName: cfg.Name,
		Address:        cfg.Address,
		Phone:          cfg.Phone,
		Email:          cfg.Email,
		MapLink:        cfg.MapLink,
	}
}

func (s *settingsService) Get(ctx context.Context) models.SiteSettings {
	if s.repo == nil {
		return s.defaults
	}

	var cached models.SiteSettings
	if s.cache.Get(ctx, settingsCacheKey, &cached) {
		return cached
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("failed to load site settings, serving defaults")
		}
		return s.defaults
	}

	s.cache.Set(ctx, settingsCacheKey, settings)
	return *settings
}

func (s *settingsService) Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.SiteSettings, error) {
	if s.repo == nil {
		return nil, models.ErrDatabaseUnavailable
	}

	current, err := s.repo.Get(ctx)
	if errors.Is(err, models.ErrNotFound) {
		current = &s.defaults
	} else if err != nil {
		return nil, err
	}

	updated := req.ApplyTo(*current)
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, settingsCacheKey)
	s.logger.Info().Msg("site settings updated")

	return &updated, nil
}
