package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// SearchPeople returns people whose full name contains query, ignoring case,
// ordered by full name, each with its number of cases. A blank query matches
// nothing and issues no store call.
func (s *Service) SearchPeople(ctx context.Context, query string) ([]domain.PersonWithCaseCount, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.PersonWithCaseCount{}, nil
	}

	people, err := s.people.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("lookup.SearchPeople: %w", err)
	}
	s.metrics.IncrementSearches()

	// One count per row; each goroutine writes only its own slot.
	out := make([]domain.PersonWithCaseCount, len(people))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.countConcurrency)
	for i, p := range people {
		out[i].Person = p
		g.Go(func() error {
			n, err := s.cases.CountByPerson(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("count cases of %s: %w", p.ID, err)
			}
			out[i].CaseCount = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lookup.SearchPeople: %w", err)
	}

	s.log.DebugContext(ctx, "people searched",
		slog.String("query", query),
		slog.Int("results", len(out)))

	return out, nil
}
