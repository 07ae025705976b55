package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

const (
	workerRefreshTimeout = 15 * time.Second
	maxEvictionInterval  = time.Minute
)

// Run consumes the auth event stream and evicts idle sessions until ctx is
// done. Events for an identity are applied to every other session of that
// identity: sign-out ends them, any other change re-fetches the profile.
func (s *Service) Run(ctx context.Context) error {
	events, cancel := s.bus.Subscribe()
	defer cancel()

	interval := s.cfg.IdleTTL / 4
	if interval <= 0 || interval > maxEvictionInterval {
		interval = maxEvictionInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.InfoContext(ctx, "session worker started", slog.Duration("eviction_interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "session worker stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.HandleEvent(ctx, ev)
		case <-ticker.C:
			s.EvictIdle(ctx)
		}
	}
}

// HandleEvent applies one auth event to the registry.
func (s *Service) HandleEvent(ctx context.Context, ev domain.AuthEvent) {
	s.metrics.IncrementAuthEvent(ev.Type.String())

	for _, sess := range s.registry.ForIdentity(ev.IdentityID) {
		if sess.ID() == ev.SessionID {
			continue
		}

		switch ev.Type {
		case domain.AuthEventSignedOut:
			s.unregister(sess)
			s.log.InfoContext(ctx, "session ended by sign-out elsewhere",
				slog.String("user_id", ev.IdentityID.String()),
				slog.String("session_id", sess.ID().String()))
		case domain.AuthEventSignedIn, domain.AuthEventTokenRefreshed, domain.AuthEventUserUpdated:
			s.refreshFromEvent(ctx, sess)
		default:
			s.log.WarnContext(ctx, "unknown auth event", slog.String("type", ev.Type.String()))
		}
	}
}

// refreshFromEvent reloads the profile of sess inline. It blocks the worker
// loop for up to workerRefreshTimeout, and events published meanwhile queue
// in the bus buffer.
func (s *Service) refreshFromEvent(ctx context.Context, sess *Session) {
	ctx, cancel := context.WithTimeout(ctx, workerRefreshTimeout)
	defer cancel()

	if _, err := s.RefreshProfile(ctx, sess); err != nil && !errors.Is(err, domain.ErrAccountDisabled) {
		s.log.WarnContext(ctx, "profile refresh failed",
			slog.String("session_id", sess.ID().String()),
			slog.String("error", err.Error()))
	}
}

// EvictIdle removes sessions unused for longer than the idle TTL.
func (s *Service) EvictIdle(ctx context.Context) int {
	cutoff := s.now().Add(-s.cfg.IdleTTL)
	idle := s.registry.Idle(cutoff)
	for _, sess := range idle {
		s.unregister(sess)
	}
	if len(idle) > 0 {
		s.log.InfoContext(ctx, "idle sessions evicted", slog.Int("count", len(idle)))
	}
	return len(idle)
}
