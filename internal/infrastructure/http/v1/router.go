// Package v1 provides the HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"

	"paneerflow/internal/domain/auth"
	"paneerflow/internal/domain/orders"
	"paneerflow/internal/domain/reports"
	"paneerflow/internal/domain/stock"
	"paneerflow/internal/infrastructure/http/v1/handlers"
	"paneerflow/internal/infrastructure/http/v1/middleware"
	"paneerflow/internal/infrastructure/storage/postgres"
	"paneerflow/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation.
	JWTValidator middleware.JWTValidator

	// Services backing the API.
	AuthService   *auth.Service
	StockService  *stock.Service
	OrderService  *orders.Service
	ReportService *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
	stockHandler := handlers.NewStockHandler(baseHandler, cfg.StockService)
	ordersHandler := handlers.NewOrdersHandler(baseHandler, cfg.OrderService)
	reportsHandler := handlers.NewReportsHandler(baseHandler, cfg.ReportService)

	// A bearer token is honored when present but never required; the API
	// keeps the open-route contract its clients were built against.
	api := router.Group("/api")
	api.Use(middleware.OptionalAuth(cfg.JWTValidator))
	{
		api.POST("/login", authHandler.Login)

		api.GET("/stock", stockHandler.GetStock)
		api.PUT("/stock/price", stockHandler.SetPrice)
		api.POST("/batch", stockHandler.ReceiveBatch)
		api.GET("/batches", stockHandler.ListBatches)

		api.POST("/orders", ordersHandler.Create)
		api.GET("/orders", ordersHandler.List)
		api.POST("/deliver", ordersHandler.Deliver)

		api.GET("/dashboard/stats", reportsHandler.GetDashboardStats)
		api.GET("/report", reportsHandler.GetTotals)
		api.GET("/reports/daily", reportsHandler.GetDailyReport)
	}

	return router
}
