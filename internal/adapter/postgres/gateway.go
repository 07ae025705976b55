package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Gateway implements gateway.Gateway directly against PostgreSQL.
type Gateway struct {
	db  Querier
	log *slog.Logger
}

var _ gateway.Gateway = (*Gateway)(nil)

// NewGateway creates a Gateway over db.
func NewGateway(db Querier, logger *slog.Logger) *Gateway {
	return &Gateway{db: db, log: logger.With("adapter", "postgres")}
}

// Select fetches rows matching q into dest (pointer to slice).
func (g *Gateway) Select(ctx context.Context, q gateway.Query, dest any) error {
	if err := q.Validate(); err != nil {
		return err
	}

	sb := psql.Select("*").From(q.Table)
	for _, f := range q.Filters {
		sb = sb.Where(predicate(f))
	}
	for _, o := range q.Orders {
		sb = sb.OrderBy(orderTerm(o))
	}
	if q.Limit > 0 {
		sb = sb.Limit(uint64(q.Limit))
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return fmt.Errorf("postgres.Select %s: build: %w", q.Table, err)
	}
	if err := pgxscan.Select(ctx, g.db, dest, sql, args...); err != nil {
		return mapError(err, "Select", q.Table)
	}
	return nil
}

// Count returns the number of rows matching q.
func (g *Gateway) Count(ctx context.Context, q gateway.Query) (int, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	sb := psql.Select("count(*)").From(q.Table)
	for _, f := range q.Filters {
		sb = sb.Where(predicate(f))
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("postgres.Count %s: build: %w", q.Table, err)
	}

	var n int64
	if err := g.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, mapError(err, "Count", q.Table)
	}
	return int(n), nil
}

// Insert stores one row and scans the stored row into dest.
func (g *Gateway) Insert(ctx context.Context, table string, values gateway.Values, dest any) error {
	if table == "" {
		return fmt.Errorf("postgres.Insert: empty table")
	}

	ib := psql.Insert(table).SetMap(values)
	if dest != nil {
		ib = ib.Suffix("RETURNING *")
	}

	sql, args, err := ib.ToSql()
	if err != nil {
		return fmt.Errorf("postgres.Insert %s: build: %w", table, err)
	}

	if dest == nil {
		_, err = g.db.Exec(ctx, sql, args...)
	} else {
		err = pgxscan.Get(ctx, g.db, dest, sql, args...)
	}
	return mapError(err, "Insert", table)
}

// Update patches rows matched by q and scans them into dest.
func (g *Gateway) Update(ctx context.Context, q gateway.Query, patch gateway.Values, dest any) error {
	if err := q.ValidateWriteScope(); err != nil {
		return err
	}
	if len(patch) == 0 {
		return fmt.Errorf("postgres.Update %s: empty patch", q.Table)
	}

	ub := psql.Update(q.Table).SetMap(patch)
	for _, f := range q.Filters {
		ub = ub.Where(predicate(f))
	}
	if dest != nil {
		ub = ub.Suffix("RETURNING *")
	}

	sql, args, err := ub.ToSql()
	if err != nil {
		return fmt.Errorf("postgres.Update %s: build: %w", q.Table, err)
	}

	if dest == nil {
		_, err = g.db.Exec(ctx, sql, args...)
	} else {
		err = pgxscan.Select(ctx, g.db, dest, sql, args...)
	}
	return mapError(err, "Update", q.Table)
}

// Delete removes rows matched by q and returns how many were removed.
func (g *Gateway) Delete(ctx context.Context, q gateway.Query) (int, error) {
	if err := q.ValidateWriteScope(); err != nil {
		return 0, err
	}

	db := psql.Delete(q.Table)
	for _, f := range q.Filters {
		db = db.Where(predicate(f))
	}

	sql, args, err := db.ToSql()
	if err != nil {
		return 0, fmt.Errorf("postgres.Delete %s: build: %w", q.Table, err)
	}

	tag, err := g.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapError(err, "Delete", q.Table)
	}
	return int(tag.RowsAffected()), nil
}

// Ping checks database connectivity.
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.Ping(ctx); err != nil {
		return fmt.Errorf("postgres.Ping: %w", err)
	}
	return nil
}

func predicate(f gateway.Filter) squirrel.Sqlizer {
	switch f.Op {
	case gateway.OpILike:
		return squirrel.ILike{f.Column: f.Value}
	case gateway.OpIn:
		return squirrel.Eq{f.Column: f.Value}
	default:
		return squirrel.Eq{f.Column: f.Value}
	}
}

func orderTerm(o gateway.Order) string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}
