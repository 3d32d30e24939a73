// Package app assembles the server from configuration. Both the long-running
// binary and the serverless handler build through New.
package app

import (
	"context"
	"fmt"
	"time"

	"kuuslauk/config"
	"kuuslauk/controllers"
	"kuuslauk/database"
	"kuuslauk/libs"
	"kuuslauk/middleware"
	"kuuslauk/repositories"
	"kuuslauk/routes"
	"kuuslauk/services"
	"kuuslauk/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const notificationTimeout = 15 * time.Second

type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Router     *gin.Engine
	Dispatcher *services.Dispatcher

	pool  *pgxpool.Pool
	redis *redis.Client
}

type repos struct {
	orders       repositories.OrderRepository
	reservations repositories.ReservationRepository
	categories   repositories.CategoryRepository
	menu         repositories.MenuRepository
	offers       repositories.OfferRepository
	settings     repositories.SettingsRepository
	admins       repositories.AdminRepository
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := config.NewLogger(cfg.Logger)
	if !cfg.EnvFileLoaded {
		logger.Debug().Msg("no .env file found, using process environment")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &App{Config: cfg, Logger: logger}

	var r repos
	if cfg.Database.Enabled() {
		pool, err := config.ConnectDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool

		if cfg.Database.RunMigrations {
			if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
				pool.Close()
				return nil, err
			}
		}

		r = repos{
			orders:       repositories.NewOrderRepository(pool, logger),
			reservations: repositories.NewReservationRepository(pool, logger),
			categories:   repositories.NewCategoryRepository(pool, logger),
			menu:         repositories.NewMenuRepository(pool, logger),
			offers:       repositories.NewOfferRepository(pool, logger),
			settings:     repositories.NewSettingsRepository(pool, logger),
			admins:       repositories.NewAdminRepository(pool, logger),
		}
	} else {
		logger.Warn().Msg("database not configured, running in read-only mode")
	}

	a.redis = config.ConnectRedis(ctx, cfg.Redis, logger)
	cache := libs.NewCache(a.redis, cfg.Redis.TTL, logger)

	var notifier services.Notifier = services.NoopNotifier{}
	if cfg.SMTP.Enabled() {
		notifier = services.NewEmailNotifier(libs.NewSMTPMailer(cfg.SMTP), cfg.SMTP.AdminEmail, cfg.Restaurant.Name)
	} else {
		logger.Warn().Msg("smtp not configured, notifications disabled")
	}
	a.Dispatcher = services.NewDispatcher(notificationTimeout, logger)

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.ResetExpiry)

	settingsSvc := services.NewSettingsService(r.settings, services.DefaultSiteSettings(cfg.Restaurant), cache, logger)
	catalogSvc := services.NewCatalogService(r.categories, r.menu, r.offers, cache, logger)
	orderSvc := services.NewOrderService(
		r.orders, r.menu, settingsSvc, notifier, a.Dispatcher,
		utils.NewOrderNumberGenerator(), cfg.Order.VerifyPrices, logger,
	)
	reservationSvc := services.NewReservationService(r.reservations, settingsSvc, notifier, a.Dispatcher, logger)

	var devAdmin *config.DevAdminConfig
	if !cfg.IsProduction() {
		devAdmin = &cfg.DevAdmin
	}
	authSvc := services.NewAuthService(r.admins, tokens, notifier, a.Dispatcher, devAdmin, cfg.Stripe.BaseURL, logger)

	if cfg.Bootstrap.Enabled() && r.admins != nil {
		if err := authSvc.EnsureAdmin(ctx, cfg.Bootstrap.Email, cfg.Bootstrap.Name, cfg.Bootstrap.Password); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
		}
	}

	var gateway services.PaymentGateway
	if cfg.Stripe.Enabled() {
		gateway = libs.NewStripeGateway(cfg.Stripe, logger)
	} else {
		logger.Warn().Msg("stripe not configured, card checkout disabled")
	}
	paymentSvc := services.NewPaymentService(gateway, r.orders, orderSvc, logger)

	var images controllers.ImageStore
	if cfg.Cloudinary.Enabled() {
		store, err := libs.NewImageStore(cfg.Cloudinary, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("image uploads disabled")
		} else {
			images = store
		}
	}

	var pinger controllers.Pinger
	if a.pool != nil {
		pinger = a.pool
	}

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.SetupRoutes(router, routes.Controllers{
		Health: controllers.NewHealthController(pinger),
		Auth: controllers.NewAuthController(authSvc, controllers.CookieConfig{
			Name:   cfg.JWT.CookieName,
			MaxAge: cfg.JWT.Expiry,
			Secure: cfg.IsProduction(),
		}, logger),
		Order:       controllers.NewOrderController(orderSvc, logger),
		Reservation: controllers.NewReservationController(reservationSvc, logger),
		Category:    controllers.NewCategoryController(catalogSvc, logger),
		Menu:        controllers.NewMenuController(catalogSvc, logger),
		Offer:       controllers.NewOfferController(catalogSvc, logger),
		Settings:    controllers.NewSettingsController(settingsSvc, logger),
		Upload:      controllers.NewUploadController(images, logger),
		Payment:     controllers.NewPaymentController(paymentSvc, logger),
	}, routes.Options{
		Sessions:        authSvc,
		CookieName:      cfg.JWT.CookieName,
		DatabaseEnabled: a.pool != nil,
	})

	a.Router = router
	return a, nil
}

// Close waits for pending notifications before releasing connections.
func (a *App) Close() {
	if a.Dispatcher != nil {
		a.Dispatcher.Wait()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
