// Package authevents fans identity change events out to subscribers.
package authevents

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

const defaultBuffer = 64

// Bus is an in-process publish/subscribe stream of auth events.
// Publishing never blocks on a slow subscriber: when a subscriber's buffer is
// full the event is dropped for that subscriber and logged.
type Bus struct {
	log    *slog.Logger
	buffer int

	mu      sync.Mutex
	nextID  int
	subs    map[int]chan domain.AuthEvent
	closed  bool
	dropped int64
}

// NewBus creates a bus whose subscribers get a channel of the given capacity.
func NewBus(logger *slog.Logger, buffer int) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{
		log:    logger.With("component", "authevents"),
		buffer: buffer,
		subs:   make(map[int]chan domain.AuthEvent),
	}
}

// Publish delivers ev to every current subscriber.
func (b *Bus) Publish(ctx context.Context, ev domain.AuthEvent) {
	if err := ctx.Err(); err != nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped++
			b.log.WarnContext(ctx, "auth event dropped",
				slog.Int("subscriber", id),
				slog.String("type", ev.Type.String()),
				slog.String("identity_id", ev.IdentityID.String()),
			)
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel func removes it
// and closes the channel; it is safe to call more than once.
func (b *Bus) Subscribe() (<-chan domain.AuthEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan domain.AuthEvent, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Dropped returns the number of deliveries skipped because a subscriber
// buffer was full.
func (b *Bus) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
