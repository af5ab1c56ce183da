// internal/data/migrations.go
// Schema migrations are kept in code as an ordered list, applied through a
// schema_migrations version table so re-running the migrate binary is safe.
package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrations holds every schema change in order. Version N is the statement
// at index N-1. Never edit or reorder an entry that has shipped; append a
// new one instead.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		product_id     BIGSERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		author         TEXT NOT NULL,
		publisher      TEXT NOT NULL DEFAULT '',
		isbn           TEXT NOT NULL,
		price          NUMERIC(10,2) NOT NULL DEFAULT 0.0 CHECK (price >= 0),
		quantity       INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		image_ref      TEXT NOT NULL DEFAULT '',
		supplier_name  TEXT NOT NULL,
		supplier_email TEXT NOT NULL DEFAULT '',
		supplier_phone TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS products_isbn_idx ON products (isbn)`,
}

// Migrate applies every pending migration and returns the number applied.
// Each migration runs in its own transaction together with its version-table
// bookkeeping, so a failure leaves the database at a well-defined version.
func Migrate(ctx context.Context, db *sqlx.DB) (int, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return 0, fmt.Errorf("creating schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return 0, fmt.Errorf("reading current schema version: %w", err)
	}

	applied := 0
	for i := current; i < len(migrations); i++ {
		version := i + 1

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return applied, err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("committing migration %d: %w", version, err)
		}
		applied++
	}

	return applied, nil
}
