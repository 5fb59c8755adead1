package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MariamAbbas03/Project435/internal/domain"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgInvalidTextRepr     = "22P02"
	pgNumericOutOfRange   = "22003"
	pgForeignKeyViolation = "23503"
)

// ClassifyError converts a pgx error into a domain error kind while keeping
// the original error in the chain.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case pgCheckViolation, pgNotNullViolation, pgInvalidTextRepr, pgNumericOutOfRange, pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStore, err)
}

// IsUniqueViolation reports whether err is a unique constraint failure on
// constraint (any constraint when empty).
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
