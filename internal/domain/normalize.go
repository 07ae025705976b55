package domain

import (
	"strings"
)

// NormalizeName prepares a person name or search query:
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into one space
//
// Case is preserved; matching is case-insensitive at the store.
func NormalizeName(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
