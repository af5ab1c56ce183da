// Package main is a standalone binary that brings the inventory database
// schema up to date. Safe to re-run: already-applied migrations are skipped
// via the schema_migrations version table.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/aoideee/inventory-api/internal/data"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

func main() {
	_ = godotenv.Load()

	var dsn string
	flag.StringVar(&dsn, "db-dsn", os.Getenv("INVENTORY_DB_DSN"), "PostgreSQL DSN")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if dsn == "" {
		logger.Error("no database DSN provided (use -db-dsn or INVENTORY_DB_DSN)")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	applied, err := data.Migrate(ctx, db)
	if err != nil {
		logger.Error("migration failed", "error", err.Error(), "applied", applied)
		os.Exit(1)
	}

	logger.Info("migrations complete", "applied", applied)
}
