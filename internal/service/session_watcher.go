package service

import (
	"sync"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.uber.org/zap"
)

// SessionWatcher fans auth events (sign-in, sign-out, refresh) out to a
// background goroutine that invalidates the cached profile for the affected
// user. It is started explicitly by the caller and must be Closed on
// shutdown; the subscription is not tied to process lifetime.
type SessionWatcher struct {
	events chan domain.AuthEvent
	cache  port.Cache[*domain.Profile]
	logger *zap.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewSessionWatcher creates and starts the watcher goroutine.
func NewSessionWatcher(cache port.Cache[*domain.Profile], logger *zap.Logger) *SessionWatcher {
	w := &SessionWatcher{
		events: make(chan domain.AuthEvent, 16),
		cache:  cache,
		logger: logger,
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *SessionWatcher) run() {
	for {
		select {
		case ev := <-w.events:
			// Any session change may mean a role change; drop the cached
			// profile so the next request re-reads it.
			w.cache.Delete(ev.UserID)
			w.logger.Debug("auth event",
				zap.String("type", ev.Type),
				zap.String("user_id", ev.UserID),
			)
		case <-w.done:
			return
		}
	}
}

// Publish delivers an auth event to the watcher. Never blocks: if the
// buffer is full the event is dropped, which only delays one cache expiry.
func (w *SessionWatcher) Publish(ev domain.AuthEvent) {
	select {
	case w.events <- ev:
	default:
	}
}

// Close stops the watcher goroutine. Safe to call more than once.
func (w *SessionWatcher) Close() {
	w.closeOnce.Do(func() { close(w.done) })
}
