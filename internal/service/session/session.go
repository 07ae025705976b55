package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/view"
)

// Session is the server-side state of one signed-in client.
type Session struct {
	id  uuid.UUID
	nav view.Navigator

	mu       sync.Mutex
	loading  bool
	identity *domain.Identity
	profile  *domain.Profile
	auth     *domain.AuthSession
	lastSeen time.Time
}

// State is a snapshot of the session's authorization state.
type State struct {
	Loading  bool
	Identity *domain.Identity
	Profile  *domain.Profile
}

func newSession(now time.Time) *Session {
	return &Session{id: uuid.New(), lastSeen: now}
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// Navigator returns the session's navigation state.
func (s *Session) Navigator() *view.Navigator { return &s.nav }

// State returns a copy of the authorization state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{Loading: s.loading}
	if s.identity != nil {
		id := *s.identity
		st.Identity = &id
	}
	if s.profile != nil {
		p := *s.profile
		st.Profile = &p
	}
	return st
}

// Profile returns a copy of the current profile, or nil.
func (s *Session) Profile() *domain.Profile {
	return s.State().Profile
}

// IdentityID returns the identity id, or uuid.Nil when signed out.
func (s *Session) IdentityID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return uuid.Nil
	}
	return s.identity.ID
}

// Authorization returns the derived access state. ok is false while the
// session has no profile.
func (s *Session) Authorization() (domain.Authorization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return domain.Authorization{}, false
	}
	return s.profile.Authorization(), true
}

// Route decides which screen the session should render.
func (s *Session) Route() view.Screen {
	st := s.State()
	return view.Route(view.Input{
		Loading:          st.Loading,
		Identity:         st.Identity,
		Profile:          st.Profile,
		SelectedPersonID: s.nav.Selected(),
	})
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Session) setAuth(a *domain.AuthSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = a
	if a != nil {
		id := a.Identity
		s.identity = &id
	}
}

func (s *Session) authSession() *domain.AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.auth == nil {
		return nil
	}
	a := *s.auth
	return &a
}

func (s *Session) setProfile(p *domain.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// clear drops everything the session knows about its identity.
func (s *Session) clear() {
	s.mu.Lock()
	s.loading = false
	s.identity = nil
	s.profile = nil
	s.auth = nil
	s.mu.Unlock()
	s.nav.Reset()
}
