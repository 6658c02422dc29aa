package postgres

import (
	"context"
	"fmt"
)

// schemaStatements bootstrap the database. Idempotent; run at startup and by
// cmd/seed. The stock table is a singleton by CHECK constraint and its
// quantity can never observably go negative.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('admin', 'delivery')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS stock (
		id                    SMALLINT PRIMARY KEY CHECK (id = 1),
		current_stock         BIGINT NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
		selling_price_per_kg  BIGINT NOT NULL DEFAULT 0 CHECK (selling_price_per_kg >= 0),
		purchase_price_per_kg BIGINT NOT NULL DEFAULT 0 CHECK (purchase_price_per_kg >= 0),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS batches (
		id             BIGSERIAL PRIMARY KEY,
		quantity       BIGINT NOT NULL CHECK (quantity > 0),
		purchase_price BIGINT NOT NULL CHECK (purchase_price >= 0),
		previous_stock BIGINT NOT NULL,
		updated_stock  BIGINT NOT NULL,
		received_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id             BIGSERIAL PRIMARY KEY,
		customer_name  TEXT NOT NULL,
		shop_name      TEXT,
		order_type     TEXT NOT NULL DEFAULT '',
		quantity       BIGINT NOT NULL CHECK (quantity > 0),
		selling_price  BIGINT NOT NULL,
		purchase_price BIGINT,
		total_amount   BIGINT NOT NULL,
		delivery_time  TIMESTAMPTZ NOT NULL,
		status         TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Delivered')),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_delivery_time ON orders (delivery_time)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id           BIGSERIAL PRIMARY KEY,
		order_id     BIGINT NOT NULL UNIQUE REFERENCES orders (id),
		amount       BIGINT NOT NULL,
		payment_mode TEXT NOT NULL CHECK (payment_mode IN ('Cash', 'UPI', 'Credit')),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id                 BIGSERIAL PRIMARY KEY,
		entity             TEXT NOT NULL,
		entity_id          BIGINT NOT NULL DEFAULT 0,
		action             TEXT NOT NULL,
		changes            JSONB,
		changes_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		actor_id           BIGINT NOT NULL DEFAULT 0,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// Singleton ledger row; fixed identity, created exactly once.
	`INSERT INTO stock (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
