// Package main is the entry point for the paneerflow API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"paneerflow/internal/config"
	"paneerflow/internal/domain/auth"
	"paneerflow/internal/domain/orders"
	"paneerflow/internal/domain/reports"
	"paneerflow/internal/domain/stock"
	v1 "paneerflow/internal/infrastructure/http/v1"
	"paneerflow/internal/infrastructure/storage/postgres"
	"paneerflow/internal/infrastructure/storage/postgres/auth_repo"
	"paneerflow/internal/infrastructure/storage/postgres/order_repo"
	"paneerflow/internal/infrastructure/storage/postgres/report_repo"
	"paneerflow/internal/infrastructure/storage/postgres/stock_repo"
	"paneerflow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting paneerflow server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	auditStore, err := postgres.NewAuditStore(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit store", "error", err)
	}

	// --- Repositories ---
	stockRepo := stock_repo.NewStockRepo(txManager)
	orderRepo := order_repo.NewOrderRepo(txManager)
	txnRepo := order_repo.NewTransactionRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// --- Services ---
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.JWTTokenTTL,
	})
	authService := auth.NewService(userRepo, jwtService)

	stockService := stock.NewService(stockRepo, txManager, auditStore)
	orderService := orders.NewService(orderRepo, txnRepo, stockRepo, txManager, auditStore)
	reportService := reports.NewService(reportRepo, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:          pool,
		Logger:        log.WithComponent("http"),
		JWTValidator:  jwtService,
		AuthService:   authService,
		StockService:  stockService,
		OrderService:  orderService,
		ReportService: reportService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
