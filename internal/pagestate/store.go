// Package pagestate keeps the live page models of connected browsers in
// memory. Nothing is persisted; a restart starts every browser afresh.
package pagestate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/authpanel/internal/forms"
)

type entry struct {
	page     *forms.Page
	lastSeen time.Time
}

// Store maps page ids to page models.
type Store struct {
	mu    sync.Mutex
	pages map[string]*entry
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		pages: make(map[string]*entry),
		now:   time.Now,
	}
}

// NewID returns a fresh page id.
func NewID() string {
	return uuid.NewString()
}

// Load returns the page for id and marks it as seen.
func (s *Store) Load(id string) (*forms.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pages[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.page, true
}

// LoadOrCreate returns the page for id, creating a fresh one when id is
// unknown or not a valid uuid. The returned id is the one the page is
// stored under.
func (s *Store) LoadOrCreate(id string) (*forms.Page, string) {
	if _, err := uuid.Parse(id); err != nil {
		id = NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.pages[id]; ok {
		e.lastSeen = s.now()
		return e.page, id
	}
	p := forms.NewPage(id)
	s.pages[id] = &entry{page: p, lastSeen: s.now()}
	return p, id
}

// Touch marks id as seen without returning its page. It reports whether the
// page exists.
func (s *Store) Touch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pages[id]
	if ok {
		e.lastSeen = s.now()
	}
	return ok
}

// Len returns the number of stored pages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Sweep removes pages not seen for longer than maxIdle and returns how many
// were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, e := range s.pages {
		if e.lastSeen.Before(cutoff) {
			delete(s.pages, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps idle pages every interval until ctx is done. Pages named
// by live, if set, are touched before each sweep.
func (s *Store) RunJanitor(ctx context.Context, interval, maxIdle time.Duration, live func() []string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if live != nil {
				for _, id := range live() {
					s.Touch(id)
				}
			}
			if n := s.Sweep(maxIdle); n > 0 {
				slog.Debug("Swept idle pages", "removed", n, "remaining", s.Len())
			}
		}
	}
}
