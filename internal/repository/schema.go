package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL is idempotent; EnsureSchema can run on every startup.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS lab_report (
		id            UUID PRIMARY KEY,
		source_path   TEXT NOT NULL,
		filename      TEXT NOT NULL,
		content_hash  BYTEA NOT NULL,
		raw_text      TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		text_quality  TEXT,
		diagnosis     TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS lab_report_content_hash ON lab_report (content_hash)`,
	`CREATE TABLE IF NOT EXISTS nutrient_result (
		id            UUID PRIMARY KEY,
		report_id     UUID NOT NULL REFERENCES lab_report(id) ON DELETE CASCADE,
		nutrient_key  TEXT NOT NULL,
		value         DOUBLE PRECISION NOT NULL,
		unit          TEXT NOT NULL,
		confidence    DOUBLE PRECISION NOT NULL,
		strategy      TEXT NOT NULL,
		status        TEXT NOT NULL,
		normal_low    DOUBLE PRECISION NOT NULL,
		normal_high   DOUBLE PRECISION NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (report_id, nutrient_key)
	)`,
	`CREATE INDEX IF NOT EXISTS nutrient_result_report ON nutrient_result (report_id)`,
}

// EnsureSchema creates the analyzer tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	for _, stmt := range schemaDDL {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			logger.Error("failed to apply schema statement", "error", err)
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	logger.Debug("database schema ensured")
	return nil
}
