package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/billing"
	"hotel-backoffice/config"
	"hotel-backoffice/controllers"
	"hotel-backoffice/jobs"
	"hotel-backoffice/metrics"
	"hotel-backoffice/middleware"
	"hotel-backoffice/routes"
	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg := config.Load(log)
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	decimal.MarshalJSONWithoutQuotes = true
	gin.SetMode(gin.ReleaseMode)

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	log.WithField("driver", cfg.DBDriver).Info("database connection established and migrations applied")

	m := metrics.New()
	engine := billing.NewEngine(
		services.NewGormRecordStore(db),
		billing.WithAtomicWrites(cfg.BillingAtomic),
		billing.WithLogger(log.WithField("component", "billing")),
		billing.WithRecorder(m),
	)
	mailer := utils.NewMailer(cfg.SMTP, log.WithField("component", "mailer"))
	if !mailer.Configured() {
		log.Warn("SMTP not configured; emails will be logged only")
	}

	// Initialize services
	auditService := services.NewAuditService(db, log.WithField("component", "audit"))
	userService := services.NewUserService(db, []byte(cfg.JWTSecret), mailer, cfg.FrontendURL, log.WithField("component", "users"))
	guestService := services.NewGuestService(db)
	roomService := services.NewRoomService(db)
	reservationService := services.NewReservationService(db)
	stayService := services.NewStayService(db, engine, log.WithField("component", "stays"))
	billService := services.NewBillService(db, engine)
	settingsService := services.NewSettingsService(db)
	invoiceService := services.NewInvoiceService(billService, settingsService, mailer)
	catalogService := services.NewCatalogService(db)
	vendorService := services.NewVendorService(db)
	reportService := services.NewReportService(db)

	// Initialize controllers
	handlers := routes.Handlers{
		Auth:         controllers.NewAuthController(userService, auditService),
		Guests:       controllers.NewGuestController(guestService, auditService),
		Rooms:        controllers.NewRoomController(roomService, auditService),
		Reservations: controllers.NewReservationController(reservationService, auditService),
		CheckIns:     controllers.NewCheckInController(stayService, auditService),
		Bills:        controllers.NewBillController(billService, invoiceService, auditService),
		Catalog:      controllers.NewCatalogController(catalogService, auditService),
		Vendors:      controllers.NewVendorController(vendorService, auditService),
		Reports:      controllers.NewReportController(reportService),
		Settings:     controllers.NewSettingsController(settingsService, auditService),
		Audit:        controllers.NewAuditController(auditService),
	}

	stop := make(chan struct{})
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanup(5*time.Minute, stop)

	router := routes.SetupRouter(handlers, routes.Options{
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
		Metrics:     m,
		RateLimiter: limiter,
	})

	scheduler := jobs.NewScheduler(reportService, stayService, m, log.WithField("component", "jobs"))
	if err := scheduler.Register(cfg.ReportCron, cfg.OverdueCron); err != nil {
		log.WithError(err).Fatal("invalid job schedule")
	}
	scheduler.Start()

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	close(stop)
	scheduler.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped gracefully")
}
