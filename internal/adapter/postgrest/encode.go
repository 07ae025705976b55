package postgrest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

// encodeQuery renders filters, ordering and limit as row API parameters.
func encodeQuery(q gateway.Query) url.Values {
	params := url.Values{}
	for _, f := range q.Filters {
		params.Add(f.Column, encodeFilter(f))
	}
	if len(q.Orders) > 0 {
		terms := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			terms = append(terms, o.Column+"."+dir)
		}
		params.Set("order", strings.Join(terms, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params
}

func encodeFilter(f gateway.Filter) string {
	switch f.Op {
	case gateway.OpILike:
		return "ilike." + starToAny(formatValue(f.Value))
	case gateway.OpIn:
		values, _ := f.Value.([]any)
		quoted := make([]string, 0, len(values))
		for _, v := range values {
			quoted = append(quoted, quote(formatValue(v)))
		}
		return "in.(" + strings.Join(quoted, ",") + ")"
	default:
		if f.Value == nil {
			return "is.null"
		}
		return "eq." + formatValue(f.Value)
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote wraps a list element in double quotes so that reserved characters
// (commas, parentheses) are taken literally.
func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

// starToAny rewrites '*' in a LIKE pattern. The row API reads '*' as '%' and
// has no escape for it, so a literal '*' is sent as '_' (any one character).
// The match is wider than on SQL drivers; callers that need exact results
// filter the rows again.
func starToAny(pattern string) string {
	return strings.ReplaceAll(pattern, "*", "_")
}
