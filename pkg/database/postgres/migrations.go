package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	version int
	name    string
	up      string
}

// migrations is applied in order; each entry runs once inside its own transaction.
var migrations = []migration{
	{
		version: 1,
		name:    "create_categories_table",
		up: `
			CREATE TABLE IF NOT EXISTS categories (
				id   BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL
			)`,
	},
	{
		version: 2,
		name:    "create_subcategories_table",
		up: `
			CREATE TABLE IF NOT EXISTS subcategories (
				id         BIGSERIAL PRIMARY KEY,
				name       TEXT NOT NULL,
				imageurl   TEXT NOT NULL DEFAULT '',
				categoryid BIGINT NOT NULL REFERENCES categories (id)
			)`,
	},
	{
		version: 3,
		name:    "create_products_table",
		up: `
			CREATE TABLE IF NOT EXISTS products (
				id            BIGSERIAL PRIMARY KEY,
				name          TEXT NOT NULL,
				price         NUMERIC NOT NULL DEFAULT 0,
				discount      NUMERIC NOT NULL DEFAULT 0,
				imageurl      TEXT NOT NULL DEFAULT '',
				subcategoryid BIGINT NOT NULL REFERENCES subcategories (id),
				description   TEXT NOT NULL DEFAULT ''
			)`,
	},
	{
		version: 4,
		name:    "index_products_subcategoryid",
		up:      `CREATE INDEX IF NOT EXISTS idx_products_subcategoryid ON products (subcategoryid)`,
	},
}

// Migrate brings the catalog schema up to the latest version.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current int
	if err := db.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", m.version, err)
		}

		if _, err := tx.ExecContext(ctx, m.up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %d (%s): %w", m.version, m.name, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}
	}

	return nil
}
