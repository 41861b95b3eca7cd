package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pasalhq/pasal-api/internal/config"
	domainRepo "github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/internal/presentation/http/handler"
	"github.com/pasalhq/pasal-api/internal/presentation/http/middleware"
	"github.com/pasalhq/pasal-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
	Customer  *handler.CustomerHandler
	Settings  *handler.SettingsHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

// registerProtectedRoutes wires the role matrix: staff can read the
// catalog and customers, run checkouts and take payments; everything
// that changes the catalog, settings or reporting surface is admin only.
func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	adminOnly := middleware.RequireRole("admin")
	anyStaff := middleware.RequireRole("admin", "staff")

	// Product catalog
	products := protected.Group("/products")
	{
		products.GET("", anyStaff, h.Product.List)
		products.GET("/categories", anyStaff, h.Product.Categories)
		products.GET("/:id", anyStaff, h.Product.Get)
		products.POST("", adminOnly, h.Product.Create)
		products.PUT("/:id", adminOnly, h.Product.Update)
		products.DELETE("/:id", adminOnly, h.Product.Delete)
		products.POST("/:id/purchase", adminOnly, h.Product.Purchase)
	}

	// Sales and checkout
	sales := protected.Group("/sales")
	{
		sales.POST("/checkout", anyStaff, middleware.Idempotency(deps.IdempotencyRepo), h.Sale.Checkout)
		sales.GET("", adminOnly, h.Sale.List)
		sales.GET("/export", adminOnly, h.Sale.Export)
		sales.GET("/:id", anyStaff, h.Sale.Get)
	}

	// Customers and receivables
	customers := protected.Group("/customers")
	{
		customers.GET("", anyStaff, h.Customer.List)
		customers.GET("/:id", anyStaff, h.Customer.Get)
		customers.POST("", anyStaff, h.Customer.Create)
		customers.PUT("/:id", adminOnly, h.Customer.Update)
		customers.DELETE("/:id", adminOnly, h.Customer.Delete)
		customers.POST("/:id/payments", anyStaff, h.Customer.RecordPayment)
		customers.GET("/:id/payments", anyStaff, h.Customer.Payments)
	}

	// Store settings
	settings := protected.Group("/settings")
	{
		settings.GET("", anyStaff, h.Settings.Get)
		settings.PUT("", adminOnly, h.Settings.Update)
	}

	// Dashboard
	protected.GET("/dashboard", adminOnly, h.Dashboard.Stats)
}
