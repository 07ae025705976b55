package gateway

import (
	"fmt"
	"strings"
)

// Op is a filter predicate operator.
type Op string

const (
	OpEq    Op = "eq"
	OpILike Op = "ilike"
	OpIn    Op = "in"
)

// Filter is one column predicate. For OpIn, Value is a []any.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Order is one ordering term.
type Order struct {
	Column string
	Desc   bool
}

// Query describes a filtered, ordered read (or the row scope of a write)
// against one table. Builder methods return modified copies.
type Query struct {
	Table   string
	Filters []Filter
	Orders  []Order
	Limit   int
}

// From starts a query on table.
func From(table string) Query {
	return Query{Table: table}
}

// Eq adds a column equality predicate. A nil value matches NULL.
func (q Query) Eq(column string, value any) Query {
	q.Filters = appendFilter(q.Filters, Filter{Column: column, Op: OpEq, Value: value})
	return q
}

// ILike adds a case-insensitive pattern predicate. The pattern is passed as
// is; use ContainsPattern to build a substring match from user input.
func (q Query) ILike(column, pattern string) Query {
	q.Filters = appendFilter(q.Filters, Filter{Column: column, Op: OpILike, Value: pattern})
	return q
}

// In adds a set membership predicate.
func (q Query) In(column string, values ...any) Query {
	q.Filters = appendFilter(q.Filters, Filter{Column: column, Op: OpIn, Value: values})
	return q
}

// OrderBy appends an ordering term.
func (q Query) OrderBy(column string, desc bool) Query {
	q.Orders = append(q.Orders[:len(q.Orders):len(q.Orders)], Order{Column: column, Desc: desc})
	return q
}

// WithLimit caps the number of returned rows. Zero means no limit.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Validate checks the query is well formed.
func (q Query) Validate() error {
	if q.Table == "" {
		return fmt.Errorf("gateway: query without table")
	}
	for _, f := range q.Filters {
		if f.Column == "" {
			return fmt.Errorf("gateway: %s: filter without column", q.Table)
		}
		if f.Op == OpIn {
			if _, ok := f.Value.([]any); !ok {
				return fmt.Errorf("gateway: %s.%s: in filter needs a value list", q.Table, f.Column)
			}
		}
	}
	if q.Limit < 0 {
		return fmt.Errorf("gateway: %s: negative limit", q.Table)
	}
	return nil
}

// ValidateWriteScope checks that q only uses equality filters and is not
// empty, so that an update or delete can never hit the whole table.
func (q Query) ValidateWriteScope() error {
	if err := q.Validate(); err != nil {
		return err
	}
	if len(q.Filters) == 0 {
		return fmt.Errorf("gateway: %s: write without filter", q.Table)
	}
	for _, f := range q.Filters {
		if f.Op != OpEq {
			return fmt.Errorf("gateway: %s.%s: writes accept equality filters only", q.Table, f.Column)
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern builds a substring pattern for ILike from raw user input.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

func appendFilter(fs []Filter, f Filter) []Filter {
	return append(fs[:len(fs):len(fs)], f)
}
