// Package session maps browser sessions to speech controllers.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilbhutani/bharativoice/internal/speech"
)

// Session is one browser's controller and its pending notifications.
type Session struct {
	ID         string
	Controller *speech.Controller
	Inbox      *Inbox

	lastSeen time.Time
}

// Registry owns the live sessions. Idle sessions are dropped after ttl; their
// last result survives in the store until the store's own TTL expires.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	synth speech.Synthesizer
	store Store
	ttl   time.Duration
	log   *slog.Logger
	now   func() time.Time
}

func NewRegistry(synth speech.Synthesizer, store Store, ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = NewMemoryStore(ttl)
	}
	return &Registry{
		sessions: make(map[string]*Session),
		synth:    synth,
		store:    store,
		ttl:      ttl,
		log:      logger.With("component", "session"),
		now:      time.Now,
	}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an identifier issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the session for id, creating it on first use. A new session is
// seeded with the last result the store holds for id.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		r.mu.Unlock()
		return s
	}
	r.mu.Unlock()

	inbox := &Inbox{}
	s := &Session{
		ID:         id,
		Controller: speech.NewController(r.synth, inbox, r.log.With("session_id", id)),
		Inbox:      inbox,
	}
	res, err := r.store.Load(ctx, id)
	switch {
	case err == nil:
		s.Controller.Restore(res)
	case !errors.Is(err, ErrNotFound):
		r.log.Warn("failed to load session result", "session_id", id, "error", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have created it while the store was consulted.
	if existing, ok := r.sessions[id]; ok {
		existing.lastSeen = r.now()
		return existing
	}
	s.lastSeen = r.now()
	r.sessions[id] = s
	return s
}

// Persist writes the session's current result to the store, or removes the
// stored result when there is none.
func (r *Registry) Persist(ctx context.Context, s *Session) error {
	res := s.Controller.Snapshot().Result
	if res == nil {
		return r.store.Delete(ctx, s.ID)
	}
	return r.store.Save(ctx, s.ID, res)
}

// Sweep drops sessions idle for longer than the TTL. Sessions with a request
// in flight or a connected audio handle are kept. It returns the number
// removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.After(cutoff) || s.Controller.HasPlayer() || s.Controller.Snapshot().Loading {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// purger is implemented by stores that must drop expired entries themselves.
type purger interface {
	Purge() int
}

// Run sweeps idle sessions, and expired results from stores that need it,
// until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug("swept idle sessions", "removed", n)
			}
			if p, ok := r.store.(purger); ok {
				if n := p.Purge(); n > 0 {
					r.log.Debug("purged expired results", "removed", n)
				}
			}
		}
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
