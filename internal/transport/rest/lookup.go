package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/internal/transport/middleware"
	"github.com/heartmarshall/caselookup-backend/internal/transport/respond"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

type lookupService interface {
	SearchPeople(ctx context.Context, query string) ([]domain.PersonWithCaseCount, error)
	SelectPerson(ctx context.Context, actingProfileID, personID uuid.UUID) (*domain.PersonWithCases, error)
	GetPersonWithCases(ctx context.Context, personID uuid.UUID) (*domain.PersonWithCases, error)
}

// LookupHandler serves person search and person detail.
type LookupHandler struct {
	svc lookupService
	rs  *respond.Responder
	log *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService, rs *respond.Responder, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, rs: rs, log: logger.With("handler", "lookup")}
}

type searchResponse struct {
	Query   string                 `json:"query"`
	Results []searchResultResponse `json:"results"`
	Stale   bool                   `json:"stale"`
}

// Search handles GET /people/search?q=. Results are stored in the session's
// navigator unless a newer search has already been applied, in which case
// the response is marked stale.
func (h *LookupHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	nav := middleware.SessionFromCtx(r.Context()).Navigator()

	gen := nav.BeginSearch()
	results, err := h.svc.SearchPeople(r.Context(), query)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	applied := nav.ApplySearch(gen, query, results)

	h.rs.JSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Results: toSearchResults(results),
		Stale:   !applied,
	})
}

// Select handles POST /people/{id}/select: it records the lookup and opens
// the person detail screen.
func (h *LookupHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	actor, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		h.rs.Fail(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
		return
	}

	person, err := h.svc.SelectPerson(r.Context(), actor, id)
	if err != nil {
		h.personError(w, r, err)
		return
	}
	middleware.SessionFromCtx(r.Context()).Navigator().Select(id)

	h.rs.JSON(w, http.StatusOK, toPersonDetail(person))
}

// Get handles GET /people/{id} without recording a lookup.
func (h *LookupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	person, err := h.svc.GetPersonWithCases(r.Context(), id)
	if err != nil {
		h.personError(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toPersonDetail(person))
}

func (h *LookupHandler) personError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.rs.Fail(w, r, http.StatusNotFound, i18n.CodePersonNotFound)
		return
	}
	h.rs.Error(w, r, err)
}
