package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/controllers"
	"hotel-backoffice/metrics"
	"hotel-backoffice/middleware"
	"hotel-backoffice/models"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Auth         *controllers.AuthController
	Guests       *controllers.GuestController
	Rooms        *controllers.RoomController
	Reservations *controllers.ReservationController
	CheckIns     *controllers.CheckInController
	Bills        *controllers.BillController
	Catalog      *controllers.CatalogController
	Vendors      *controllers.VendorController
	Reports      *controllers.ReportController
	Settings     *controllers.SettingsController
	Audit        *controllers.AuditController
}

type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
	Logger      *logrus.Logger
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
}

func SetupRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	allowCredentials := true
	for _, origin := range opts.CORSOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	api := r.Group("/api")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Handler())
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/forgot", h.Auth.ForgotPassword)
		auth.POST("/reset", h.Auth.ResetPassword)
	}

	secured := api.Group("")
	secured.Use(middleware.AuthJWT(opts.JWTSecret))

	admin := middleware.RequireRoles(models.RoleAdmin)
	finance := middleware.RequireRoles(models.RoleAccountant)

	secured.GET("/auth/me", h.Auth.Me)

	users := secured.Group("/users", admin)
	{
		users.GET("", h.Auth.ListUsers)
		users.POST("", h.Auth.CreateUser)
		users.PUT("/:id", h.Auth.UpdateUser)
	}

	guests := secured.Group("/guests")
	{
		guests.GET("", h.Guests.List)
		guests.GET("/:id", h.Guests.Get)
		guests.POST("", h.Guests.Create)
		guests.PUT("/:id", h.Guests.Update)
	}

	categories := secured.Group("/room-categories")
	{
		categories.GET("", h.Rooms.ListCategories)
		categories.POST("", admin, h.Rooms.CreateCategory)
		categories.PUT("/:id", admin, h.Rooms.UpdateCategory)
	}

	rooms := secured.Group("/rooms")
	{
		rooms.GET("", h.Rooms.List)
		rooms.GET("/availability", h.Rooms.Availability)
		rooms.GET("/:id", h.Rooms.Get)
		rooms.POST("", admin, h.Rooms.Create)
		rooms.PUT("/:id", h.Rooms.Update)
	}

	reservations := secured.Group("/reservations")
	{
		reservations.GET("", h.Reservations.List)
		reservations.GET("/:id", h.Reservations.Get)
		reservations.POST("", h.Reservations.Create)
		reservations.PUT("/:id", h.Reservations.Update)
	}

	checkins := secured.Group("/checkins")
	{
		checkins.GET("", h.CheckIns.List)
		checkins.GET("/:id", h.CheckIns.Get)
		checkins.POST("", h.CheckIns.CheckIn)
		checkins.PUT("/:id/checkout", h.CheckIns.CheckOut)
	}

	bills := secured.Group("/bills")
	{
		bills.GET("", h.Bills.List)
		bills.GET("/:id", h.Bills.Get)
		bills.POST("", h.Bills.Generate)
		bills.POST("/:id/items", h.Bills.AddItem)
		bills.POST("/:id/recalculate", h.Bills.Recalculate)
		bills.POST("/:id/email", h.Bills.Email)
	}

	payments := secured.Group("/payments")
	{
		payments.GET("", h.Bills.Payments)
		payments.POST("", h.Bills.RecordPayment)
	}

	food := secured.Group("/food")
	{
		food.GET("", h.Catalog.FoodMenu)
		food.POST("/categories", admin, h.Catalog.CreateFoodCategory)
		food.POST("", admin, h.Catalog.CreateFood)
		food.PUT("/:id", admin, h.Catalog.UpdateFood)
	}

	extras := secured.Group("/services")
	{
		extras.GET("", h.Catalog.Services)
		extras.POST("", admin, h.Catalog.CreateService)
		extras.PUT("/:id", admin, h.Catalog.UpdateService)
	}

	vendors := secured.Group("/vendors", finance)
	{
		vendors.GET("", h.Vendors.List)
		vendors.POST("", h.Vendors.Create)
		vendors.GET("/transactions", h.Vendors.Transactions)
		vendors.POST("/transactions", h.Vendors.CreateTransaction)
		vendors.PUT("/transactions/:id", h.Vendors.SetTransactionStatus)
		vendors.PUT("/:id", h.Vendors.Update)
	}

	expenses := secured.Group("/expenses", finance)
	{
		expenses.GET("", h.Vendors.Expenses)
		expenses.POST("", h.Vendors.CreateExpense)
		expenses.DELETE("/:id", h.Vendors.DeleteExpense)
	}

	secured.GET("/reports", finance, h.Reports.Get)

	settings := secured.Group("/settings")
	{
		settings.GET("/hotel", h.Settings.GetHotel)
		settings.PUT("/hotel", admin, h.Settings.UpdateHotel)
	}

	secured.GET("/audit-logs", admin, h.Audit.List)

	return r
}
