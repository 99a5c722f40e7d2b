// Package session binds a browser to its form controller through a signed
// cookie and keeps controllers in memory until they go idle.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/kdduha/skillscribe/internal/controller"
	"github.com/kdduha/skillscribe/pkg/logger"
)

const (
	cookieName = "skillscribe"
	idKey      = "sid"

	minSweepInterval = time.Second
)

type entry struct {
	ctrl     *controller.Controller
	lastSeen time.Time
}

type Store struct {
	cookies       *sessions.CookieStore
	newController func() *controller.Controller
	ttl           time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewStore signs cookies with secret, or with a random per-process key when
// secret is empty.
func NewStore(secret string, ttl time.Duration, secure bool, newController func() *controller.Controller) *Store {
	key := []byte(secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}

	cookies := sessions.NewCookieStore(key)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{
		cookies:       cookies,
		newController: newController,
		ttl:           ttl,
		entries:       make(map[string]*entry),
		now:           time.Now,
	}
}

// Controller returns the controller of the requesting browser, creating a
// session when the request carries none. It sets the cookie on w, so it must
// run before anything is written to the body.
func (s *Store) Controller(w http.ResponseWriter, r *http.Request) (*controller.Controller, error) {
	sess, err := s.cookies.Get(r, cookieName)
	if err != nil {
		// a tampered or stale cookie still yields a fresh session
		logger.FromContext(r.Context()).Debug("session cookie rejected", "error", err)
	}

	id, _ := sess.Values[idKey].(string)
	if id == "" {
		id = uuid.NewString()
		sess.Values[idKey] = id
	}
	// refresh MaxAge on every visit
	if err := sess.Save(r, w); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return s.lookup(id), nil
}

func (s *Store) lookup(id string) *controller.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &entry{ctrl: s.newController()}
		s.entries[id] = e
	}
	e.lastSeen = s.now()
	return e.ctrl
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run evicts idle controllers until ctx is done.
func (s *Store) Run(ctx context.Context) {
	log := logger.FromContext(ctx)
	interval := max(s.ttl/2, minSweepInterval)
	log.Info("starting session janitor", "ttl", s.ttl, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("session janitor stopped")
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				log.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}

// sweep drops controllers idle for longer than ttl. A controller with a solve
// in flight is kept regardless.
func (s *Store) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	threshold := s.now().Add(-s.ttl)
	evicted := 0
	for id, e := range s.entries {
		if e.lastSeen.After(threshold) || e.ctrl.State().Loading {
			continue
		}
		delete(s.entries, id)
		evicted++
	}
	return evicted
}
