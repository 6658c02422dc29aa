// Package main provides a CLI tool for seeding the database with the schema
// and the two operator accounts.
package main

import (
	"context"
	"fmt"
	"os"

	"paneerflow/internal/config"
	appctx "paneerflow/internal/core/context"
	"paneerflow/internal/domain/auth"
	"paneerflow/internal/infrastructure/storage/postgres"
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
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Schema bootstrap also inserts the stock ledger singleton.
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema applied")

	seedUser(ctx, pool, log,
		getEnv("ADMIN_EMAIL", "admin@paneerflow.local"),
		getEnv("ADMIN_PASSWORD", "Admin123!"),
		appctx.RoleAdmin,
	)
	seedUser(ctx, pool, log,
		getEnv("DELIVERY_EMAIL", "delivery@paneerflow.local"),
		getEnv("DELIVERY_PASSWORD", "Delivery123!"),
		appctx.RoleDelivery,
	)

	log.Info("seeding completed successfully")
}

func seedUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger, email, password string, role appctx.Role) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalw("failed to hash password", "error", err)
	}

	// Existing accounts keep their password.
	tag, err := pool.Exec(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
	`, email, hash, string(role))
	if err != nil {
		log.Fatalw("failed to seed user", "email", email, "error", err)
	}

	if tag.RowsAffected() > 0 {
		log.Infow("user created", "email", email, "role", string(role))
	} else {
		log.Infow("user already exists", "email", email)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
