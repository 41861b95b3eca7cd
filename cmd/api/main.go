package main

import (
	"github.com/gin-gonic/gin"
	"github.com/pasalhq/pasal-api/internal/application/service"
	"github.com/pasalhq/pasal-api/internal/config"
	"github.com/pasalhq/pasal-api/internal/infrastructure/database"
	"github.com/pasalhq/pasal-api/internal/infrastructure/repository"
	"github.com/pasalhq/pasal-api/internal/presentation/http/handler"
	"github.com/pasalhq/pasal-api/internal/presentation/http/routes"
	"github.com/pasalhq/pasal-api/pkg/logger"
	"github.com/pasalhq/pasal-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.App.Env)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService, err := service.NewAuthService(&cfg.Auth, jwtManager)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}
	if len(cfg.Auth.Users) == 0 {
		log.Warn("No login accounts configured; set ADMIN_USERNAME/ADMIN_PASSWORD")
	}
	catalogService := service.NewCatalogService(productRepo)
	checkoutService := service.NewCheckoutService(saleRepo, productRepo, customerRepo, paymentRepo, settingsRepo)
	receivableService := service.NewReceivableService(saleRepo, customerRepo, paymentRepo)
	customerService := service.NewCustomerService(customerRepo, saleRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	dashboardService := service.NewDashboardService(productRepo, saleRepo)
	reportService := service.NewReportService(saleRepo, settingsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(catalogService),
		Sale:      handler.NewSaleHandler(checkoutService, reportService),
		Customer:  handler.NewCustomerHandler(customerService, receivableService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "5001"
	}

	log.Infof("Starting %s server on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
