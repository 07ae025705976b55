package rest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

type fakeUser struct {
	id       uuid.UUID
	email    string
	password string
}

// fakeIdentity is an in-memory identity provider for both the session and
// admin services.
type fakeIdentity struct {
	mu      sync.Mutex
	byEmail map[string]*fakeUser
	byID    map[uuid.UUID]*fakeUser
	tokens  map[string]uuid.UUID
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		byEmail: map[string]*fakeUser{},
		byID:    map[uuid.UUID]*fakeUser{},
		tokens:  map[string]uuid.UUID{},
	}
}

func (f *fakeIdentity) add(email, password string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &fakeUser{id: uuid.New(), email: strings.ToLower(email), password: password}
	f.byEmail[u.email] = u
	f.byID[u.id] = u
	return u.id
}

func (f *fakeIdentity) SignInWithPassword(_ context.Context, email, password string) (*domain.AuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok || u.password != password {
		return nil, fmt.Errorf("invalid login: %w", domain.ErrUnauthorized)
	}
	token := "at-" + uuid.NewString()
	f.tokens[token] = u.id
	return &domain.AuthSession{
		Identity:     domain.Identity{ID: u.id, Email: u.email},
		AccessToken:  token,
		RefreshToken: "rt-" + token,
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeIdentity) RefreshSession(context.Context, string) (*domain.AuthSession, error) {
	return nil, domain.ErrUnauthorized
}

func (f *fakeIdentity) SignOut(_ context.Context, accessToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, accessToken)
	return nil
}

func (f *fakeIdentity) GetUser(_ context.Context, accessToken string) (*domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[accessToken]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &domain.Identity{ID: id, Email: f.byID[id].email}, nil
}

func (f *fakeIdentity) UpdatePassword(_ context.Context, accessToken, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[accessToken]
	if !ok {
		return domain.ErrUnauthorized
	}
	f.byID[id].password = password
	return nil
}

func (f *fakeIdentity) AdminCreateUser(_ context.Context, email, password string) (*domain.Identity, error) {
	f.mu.Lock()
	if _, ok := f.byEmail[strings.ToLower(email)]; ok {
		f.mu.Unlock()
		return nil, domain.ErrAlreadyExists
	}
	f.mu.Unlock()
	id := f.add(email, password)
	return &domain.Identity{ID: id, Email: strings.ToLower(email)}, nil
}

func (f *fakeIdentity) AdminSetPassword(_ context.Context, id uuid.UUID, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.password = password
	return nil
}

func (f *fakeIdentity) AdminDeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, u.email)
	return nil
}

func strPtr(s string) *string { return &s }

func uuidOf(t interface{ Fatalf(string, ...any) }, s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("bad uuid %q: %v", s, err)
	}
	return id
}
