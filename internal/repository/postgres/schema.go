// internal/repository/postgres/schema.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"daily-broadcast/pkg/db"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS broadcasts (
		id             BIGSERIAL PRIMARY KEY,
		date           TEXT NOT NULL UNIQUE,
		video_url      TEXT NOT NULL,
		broadcast_time TEXT NOT NULL,
		video_title    TEXT NOT NULL,
		ad_payment     NUMERIC NOT NULL DEFAULT 1000
	)`,
	`CREATE TABLE IF NOT EXISTS user_wallets (
		wallet_address TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		connected_at   TIMESTAMPTZ NOT NULL,
		total_earned   NUMERIC NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS ad_views (
		broadcast_id   BIGINT NOT NULL,
		wallet_address TEXT NOT NULL,
		viewed_at      TIMESTAMPTZ NOT NULL,
		reward_amount  NUMERIC NOT NULL,
		claimed        BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (broadcast_id, wallet_address)
	)`,
	`CREATE INDEX IF NOT EXISTS ad_views_wallet_idx ON ad_views (wallet_address)`,
}

// Migrate creates the tables used by the PostgreSQL repositories. It is idempotent.
func Migrate(ctx context.Context, database *sqlx.DB) error {
	return db.WithTx(ctx, database, func(tx *sqlx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}
