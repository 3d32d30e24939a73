package routes

import (
	"kuuslauk/controllers"
	"kuuslauk/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Health      *controllers.HealthController
	Auth        *controllers.AuthController
	Order       *controllers.OrderController
	Reservation *controllers.ReservationController
	Category    *controllers.CategoryController
	Menu        *controllers.MenuController
	Offer       *controllers.OfferController
	Settings    *controllers.SettingsController
	Upload      *controllers.UploadController
	Payment     *controllers.PaymentController
}

type Options struct {
	Sessions        middleware.SessionParser
	CookieName      string
	DatabaseEnabled bool
}

func SetupRoutes(router *gin.Engine, ctrl Controllers, opts Options) {
	adminAuth := middleware.AdminAuth(opts.Sessions, opts.CookieName)
	needDB := middleware.RequireDatabase(opts.DatabaseEnabled)
	emptyWithoutDB := middleware.EmptyWithoutDatabase(opts.DatabaseEnabled)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", ctrl.Health.Health)

	router.GET("/categories", ctrl.Category.GetCategories)
	router.GET("/menu", ctrl.Menu.GetMenu)
	router.GET("/menu/:id", ctrl.Menu.GetMenuItem)
	router.GET("/offers", ctrl.Offer.GetOffers)
	router.GET("/offers/:id", ctrl.Offer.GetOffer)
	router.GET("/settings", ctrl.Settings.GetSettings)

	router.POST("/orders", needDB, ctrl.Order.CreateOrder)
	router.POST("/reservations", needDB, ctrl.Reservation.CreateReservation)
	router.POST("/checkout", needDB, ctrl.Payment.Checkout)
	router.POST("/payments/webhook", needDB, ctrl.Payment.Webhook)

	router.POST("/admin/auth", ctrl.Auth.Login)
	router.POST("/admin/logout", ctrl.Auth.Logout)
	router.POST("/admin/forgot-password", needDB, ctrl.Auth.ForgotPassword)
	router.POST("/admin/reset-password", needDB, ctrl.Auth.ResetPassword)

	admin := router.Group("/")
	admin.Use(adminAuth)
	{
		admin.GET("/admin/me", ctrl.Auth.Me)
		admin.POST("/admin/change-password", needDB, ctrl.Auth.ChangePassword)

		admin.GET("/orders", emptyWithoutDB, ctrl.Order.ListOrders)
		admin.GET("/orders/:id", needDB, ctrl.Order.GetOrder)
		admin.PUT("/orders/:id", needDB, ctrl.Order.UpdateOrderStatus)
		admin.DELETE("/orders/:id", needDB, ctrl.Order.DeleteOrder)

		admin.GET("/reservations", emptyWithoutDB, ctrl.Reservation.ListReservations)
		admin.PUT("/reservations/:id", needDB, ctrl.Reservation.UpdateReservationStatus)
		admin.DELETE("/reservations/:id", needDB, ctrl.Reservation.DeleteReservation)

		admin.POST("/categories", ctrl.Category.CreateCategory)
		admin.PUT("/categories/:id", ctrl.Category.UpdateCategory)
		admin.DELETE("/categories/:id", ctrl.Category.DeleteCategory)

		admin.POST("/menu", ctrl.Menu.CreateMenuItem)
		admin.PUT("/menu/:id", ctrl.Menu.UpdateMenuItem)
		admin.DELETE("/menu/:id", ctrl.Menu.DeleteMenuItem)

		admin.POST("/offers", ctrl.Offer.CreateOffer)
		admin.PUT("/offers/:id", ctrl.Offer.UpdateOffer)
		admin.DELETE("/offers/:id", ctrl.Offer.DeleteOffer)

		admin.PUT("/settings", ctrl.Settings.UpdateSettings)

		admin.POST("/admin/upload", ctrl.Upload.Upload)
		admin.DELETE("/admin/upload", ctrl.Upload.Delete)
		admin.POST("/admin/sign-cloudinary", ctrl.Upload.Sign)
	}
}
