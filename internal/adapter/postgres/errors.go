package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

// mapError converts pgx/pgconn errors into the errors the REST driver would
// report for the same failure: PgErrors become *gateway.RemoteError with the
// server message verbatim, so callers see one error shape per failure kind.
// context.DeadlineExceeded and context.Canceled pass through.
func mapError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("postgres.%s %s: %w", op, table, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("postgres.%s %s: %w", op, table, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres.%s %s: %w", op, table, &gateway.RemoteError{
			Code:    pgErr.Code,
			Message: pgErr.Message,
		})
	}

	return fmt.Errorf("postgres.%s %s: %w", op, table, err)
}
