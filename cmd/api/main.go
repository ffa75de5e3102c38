package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tourstay/internal/config"
	"tourstay/internal/database"
	"tourstay/internal/gateway"
	"tourstay/internal/middleware"
	"tourstay/internal/modules/admin"
	"tourstay/internal/modules/auth"
	"tourstay/internal/modules/booking"
	"tourstay/internal/modules/catalog"
	"tourstay/internal/modules/inventory"
	"tourstay/internal/modules/packages"
	"tourstay/internal/modules/payment"
	jwtsvc "tourstay/internal/pkg/jwt"
	"tourstay/internal/pkg/logger"
	"tourstay/internal/repository"
)

func main() {
	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	zlog := logger.New(cfg.App.LogFilePath, cfg.IsProduction())
	defer zlog.Sync()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	gw, err := gateway.NewSimulator(cfg.Gateway.LedgerPath, cfg.Gateway.Name)
	if err != nil {
		zlog.Fatal("gateway ledger open failed", zap.Error(err))
	}
	defer gw.Close()

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomTypeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	packageRepo := repository.NewPackageRepository(db)

	j := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	ledger := inventory.NewLedger(roomRepo, zlog)

	authService := auth.NewService(userRepo, j)
	catalogService := catalog.NewService(hotelRepo, roomRepo, zlog)
	adminService := admin.NewService(hotelRepo, zlog)
	packageService := packages.NewService(packageRepo, zlog)
	paymentService := payment.NewService(paymentRepo, bookingRepo, gw, zlog)
	bookingService := booking.NewService(bookingRepo, roomRepo, hotelRepo, ledger, paymentService, zlog)

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	adminHandler := admin.NewHandler(adminService)
	packageHandler := packages.NewHandler(packageService)
	paymentHandler := payment.NewHandler(paymentService)
	bookingHandler := booking.NewHandler(bookingService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(zlog))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		packageHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterWebhook(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Authenticate(j))
		{
			adminOnly := middleware.AdminOnly()
			ownerOrAdmin := middleware.RequireRoles("hotel_owner", "admin")
			moderatorOrAdmin := middleware.RequireRoles("moderator", "admin")

			bookingHandler.RegisterRoutes(protected, adminOnly)
			paymentHandler.RegisterRoutes(protected, adminOnly)
			catalogHandler.RegisterOwnerRoutes(protected, ownerOrAdmin, moderatorOrAdmin)

			moderation := protected.Group("/")
			moderation.Use(moderatorOrAdmin)
			adminHandler.RegisterRoutes(moderation)

			pkgAdmin := protected.Group("/")
			pkgAdmin.Use(adminOnly)
			packageHandler.RegisterAdminRoutes(pkgAdmin)
		}
	}

	zlog.Info("server starting", zap.String("port", cfg.App.Port))
	if err := r.Run(":" + cfg.App.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
