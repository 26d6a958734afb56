// Package session keeps one view.Controller per visitor, keyed by a random
// cookie, and evicts controllers that have been idle too long.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"introboard/internal/logger"
	"introboard/internal/view"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	CookieName = "introboard_session"

	DefaultTTL = 30 * time.Minute

	contextKey = "controller"
)

type entry struct {
	ctrl     *view.Controller
	lastSeen time.Time
}

type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	newCtrl func() *view.Controller
	now     func() time.Time
}

// NewStore creates a store. newCtrl builds the controller for a new visitor.
func NewStore(ttl time.Duration, newCtrl func() *view.Controller) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		newCtrl: newCtrl,
		now:     time.Now,
	}
}

// Get returns the controller for id, creating one under a fresh id when id is
// unknown. The returned id is the one the visitor should keep.
func (s *Store) Get(id string) (string, *view.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[id]; ok && now.Sub(e.lastSeen) < s.ttl {
		e.lastSeen = now
		return id, e.ctrl
	}

	id = uuid.NewString()
	e := &entry{ctrl: s.newCtrl(), lastSeen: now}
	s.entries[id] = e
	return id, e.ctrl
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops controllers idle for longer than the TTL and returns how many.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) >= s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Middleware attaches the visitor's controller to the echo context and
// refreshes the session cookie.
func Middleware(store *Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(CookieName); err == nil {
				id = cookie.Value
			}

			id, ctrl := store.Get(id)
			c.SetCookie(&http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(store.ttl.Seconds()),
			})
			c.Set(contextKey, ctrl)
			return next(c)
		}
	}
}

// Controller returns the controller set by Middleware.
func Controller(c echo.Context) *view.Controller {
	ctrl, _ := c.Get(contextKey).(*view.Controller)
	return ctrl
}
