// Package gateway defines the table-scoped contract every store driver
// implements. It owns no business logic: repositories build Queries,
// drivers translate them to the wire.
package gateway

import (
	"context"
)

// Values is a single row payload keyed by column name.
type Values map[string]any

// Gateway is a generic client to a relational store.
//
// Row destinations are structs tagged with both `json` and `db` column
// names so that every driver can decode them.
type Gateway interface {
	// Select runs a filtered select and decodes all rows into dest,
	// which must be a pointer to a slice of structs.
	Select(ctx context.Context, q Query, dest any) error

	// Count returns the number of rows matching q without fetching them.
	Count(ctx context.Context, q Query) (int, error)

	// Insert stores one row and decodes the stored row into dest
	// (pointer to struct). dest may be nil.
	Insert(ctx context.Context, table string, values Values, dest any) error

	// Update applies patch to rows matched by q's equality filters and
	// decodes the updated rows into dest (pointer to slice). dest may be nil.
	Update(ctx context.Context, q Query, patch Values, dest any) error

	// Delete removes rows matched by q's equality filters and returns
	// how many were removed.
	Delete(ctx context.Context, q Query) (int, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
