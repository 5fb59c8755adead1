package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL that EnsureSchema applies.
func Schema() string {
	return schemaSQL
}

// EnsureSchema creates the customers, inventory and sales tables when they
// are missing. It is safe to run on every start.
func EnsureSchema(ctx context.Context, db Querier) error {
	// No arguments, so pgx sends it over the simple protocol and the
	// multi-statement script runs in one round trip.
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	slog.Info("✅ Tables created successfully")
	return nil
}
