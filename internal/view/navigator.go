package view

import (
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// Navigator holds the per-session navigation state: the latest search and
// the selected person. Each search takes a generation ticket so that results
// of an older search cannot overwrite a newer one.
type Navigator struct {
	mu         sync.Mutex
	generation uint64
	applied    uint64
	query      string
	results    []domain.PersonWithCaseCount
	selected   uuid.UUID
}

// State is a snapshot of the navigator.
type State struct {
	Query            string                       `json:"query"`
	Results          []domain.PersonWithCaseCount `json:"results"`
	SelectedPersonID *uuid.UUID                   `json:"selected_person_id"`
}

// BeginSearch issues the ticket for a new search.
func (n *Navigator) BeginSearch() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	return n.generation
}

// ApplySearch stores results for the search holding ticket gen. It reports
// false and changes nothing when a newer search has already started.
func (n *Navigator) ApplySearch(gen uint64, query string, results []domain.PersonWithCaseCount) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.generation || gen <= n.applied {
		return false
	}
	n.applied = gen
	n.query = query
	n.results = results
	return true
}

// Select marks a person as selected.
func (n *Navigator) Select(personID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = personID
}

// Back leaves the detail screen.
func (n *Navigator) Back() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = uuid.Nil
}

// Reset clears all navigation state.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	n.applied = n.generation
	n.query = ""
	n.results = nil
	n.selected = uuid.Nil
}

// Selected returns the selected person id, or uuid.Nil.
func (n *Navigator) Selected() uuid.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selected
}

// Snapshot returns a copy of the current state.
func (n *Navigator) Snapshot() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	st := State{
		Query:   n.query,
		Results: append([]domain.PersonWithCaseCount(nil), n.results...),
	}
	if n.selected != uuid.Nil {
		id := n.selected
		st.SelectedPersonID = &id
	}
	return st
}
