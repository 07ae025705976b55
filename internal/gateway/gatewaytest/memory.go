// Package gatewaytest provides an in-memory gateway.Gateway for tests.
// Rows are stored in their JSON form, so the same tagged row structs the
// REST driver decodes also round-trip here.
package gatewaytest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

// Call records one gateway invocation.
type Call struct {
	Op    string
	Table string
}

type cascade struct {
	child  string
	column string
}

// Memory is a goroutine-safe in-memory gateway. Inserted rows get an id and
// timestamps when absent; a duplicate id is reported as a unique violation.
type Memory struct {
	mu       sync.Mutex
	tables   map[string][]map[string]any
	cascades map[string][]cascade
	calls    []Call
	clock    time.Time

	// FailOn, when set, is consulted before every call; a non-nil error is
	// returned instead of running the call.
	FailOn func(op, table string) error
}

var _ gateway.Gateway = (*Memory)(nil)

// NewMemory creates an empty Memory.
func NewMemory() *Memory {
	return &Memory{
		tables:   map[string][]map[string]any{},
		cascades: map[string][]cascade{},
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CascadeDelete registers a foreign key child.column -> parent.id with
// ON DELETE CASCADE semantics.
func (m *Memory) CascadeDelete(parent, child, column string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cascades[parent] = append(m.cascades[parent], cascade{child: child, column: column})
}

// Calls returns a copy of the recorded calls.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns how many calls matched op (and table, when not empty).
func (m *Memory) CallCount(op, table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Op == op && (table == "" || c.Table == table) {
			n++
		}
	}
	return n
}

// Rows returns the number of rows stored in table.
func (m *Memory) Rows(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[table])
}

func (m *Memory) Select(ctx context.Context, q gateway.Query, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx, "Select", q.Table); err != nil {
		return err
	}
	if err := q.Validate(); err != nil {
		return err
	}

	matched, err := m.match(q)
	if err != nil {
		return err
	}
	sortRows(matched, q.Orders)
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return decode(matched, dest)
}

func (m *Memory) Count(ctx context.Context, q gateway.Query) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx, "Count", q.Table); err != nil {
		return 0, err
	}
	if err := q.Validate(); err != nil {
		return 0, err
	}
	matched, err := m.match(q)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (m *Memory) Insert(ctx context.Context, table string, values gateway.Values, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx, "Insert", table); err != nil {
		return err
	}

	row, err := normalize(values)
	if err != nil {
		return err
	}
	if row["id"] == nil {
		row["id"] = uuid.NewString()
	}
	for _, existing := range m.tables[table] {
		if equal(existing["id"], row["id"]) {
			return &gateway.RemoteError{Status: 409, Code: "23505", Message: fmt.Sprintf("duplicate key value violates unique constraint \"%s_pkey\"", table)}
		}
	}
	now := m.tick()
	for _, col := range []string{"created_at", "updated_at", "searched_at"} {
		if row[col] == nil {
			row[col] = now
		}
	}

	m.tables[table] = append(m.tables[table], row)
	if dest == nil {
		return nil
	}
	return decode(row, dest)
}

func (m *Memory) Update(ctx context.Context, q gateway.Query, patch gateway.Values, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx, "Update", q.Table); err != nil {
		return err
	}
	if err := q.ValidateWriteScope(); err != nil {
		return err
	}
	p, err := normalize(patch)
	if err != nil {
		return err
	}

	matched, err := m.match(q)
	if err != nil {
		return err
	}
	now := m.tick()
	for _, row := range matched {
		for k, v := range p {
			row[k] = v
		}
		if _, ok := row["updated_at"]; ok {
			row["updated_at"] = now
		}
	}
	if dest == nil {
		return nil
	}
	return decode(matched, dest)
}

func (m *Memory) Delete(ctx context.Context, q gateway.Query) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx, "Delete", q.Table); err != nil {
		return 0, err
	}
	if err := q.ValidateWriteScope(); err != nil {
		return 0, err
	}
	return m.deleteWhere(q)
}

func (m *Memory) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.begin(ctx, "Ping", "")
}

func (m *Memory) begin(ctx context.Context, op, table string) error {
	m.calls = append(m.calls, Call{Op: op, Table: table})
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.FailOn != nil {
		return m.FailOn(op, table)
	}
	return nil
}

func (m *Memory) tick() string {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock.Format(time.RFC3339Nano)
}

func (m *Memory) deleteWhere(q gateway.Query) (int, error) {
	var kept []map[string]any
	var removed []map[string]any
	for _, row := range m.tables[q.Table] {
		ok, err := matches(row, q.Filters)
		if err != nil {
			return 0, err
		}
		if ok {
			removed = append(removed, row)
		} else {
			kept = append(kept, row)
		}
	}
	m.tables[q.Table] = kept

	for _, row := range removed {
		for _, c := range m.cascades[q.Table] {
			if _, err := m.deleteWhere(gateway.From(c.child).Eq(c.column, row["id"])); err != nil {
				return 0, err
			}
		}
	}
	return len(removed), nil
}

func (m *Memory) match(q gateway.Query) ([]map[string]any, error) {
	var out []map[string]any
	for _, row := range m.tables[q.Table] {
		ok, err := matches(row, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func matches(row map[string]any, filters []gateway.Filter) (bool, error) {
	for _, f := range filters {
		got := row[f.Column]
		switch f.Op {
		case gateway.OpEq:
			want, err := normalizeValue(f.Value)
			if err != nil {
				return false, err
			}
			if !equal(got, want) {
				return false, nil
			}
		case gateway.OpILike:
			re, err := likeRegexp(fmt.Sprint(f.Value))
			if err != nil {
				return false, err
			}
			s, _ := got.(string)
			if !re.MatchString(s) {
				return false, nil
			}
		case gateway.OpIn:
			values, _ := f.Value.([]any)
			found := false
			for _, v := range values {
				want, err := normalizeValue(v)
				if err != nil {
					return false, err
				}
				if equal(got, want) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		}
	}
	return true, nil
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// likeRegexp translates an ILIKE pattern with backslash escapes.
func likeRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?is)^")
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(".*")
		case r == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

func sortRows(rows []map[string]any, orders []gateway.Order) {
	if len(orders) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range orders {
			c := compare(rows[i][o.Column], rows[j][o.Column])
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compare(a, b any) int {
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	if ta, err := time.Parse(time.RFC3339Nano, as); err == nil {
		if tb, err := time.Parse(time.RFC3339Nano, bs); err == nil {
			return ta.Compare(tb)
		}
	}
	if fa, err := strconv.ParseFloat(as, 64); err == nil {
		if fb, err := strconv.ParseFloat(bs, 64); err == nil {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
}

func normalize(values gateway.Values) (map[string]any, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("gatewaytest: encode: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("gatewaytest: decode: %w", err)
	}
	return out, nil
}

func normalizeValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("gatewaytest: encode filter: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("gatewaytest: decode filter: %w", err)
	}
	return out, nil
}

func decode(src, dest any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("gatewaytest: encode rows: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("gatewaytest: decode rows: %w", err)
	}
	return nil
}
