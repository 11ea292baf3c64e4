package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the part of a pool needed to apply the schema.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// order_items.product_id has no foreign key: deleting a product must not touch
// historical order lines.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		category    TEXT,
		image_url   TEXT NOT NULL DEFAULT '',
		rating      DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		address       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		email         TEXT NOT NULL,
		address       TEXT NOT NULL DEFAULT '',
		total_amount  NUMERIC(12,2) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS orders_email_idx ON orders (email)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         BIGSERIAL PRIMARY KEY,
		order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL,
		quantity   INT NOT NULL CHECK (quantity > 0),
		price      NUMERIC(12,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id)`,
}

// EnsureSchema creates the storefront tables when they are absent.
func EnsureSchema(ctx context.Context, db Execer) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
