// Package session keeps the transient conversation state of every user.
//
// Sessions live only as long as the process. Each user's session is guarded by
// its own lock, held for a whole read-modify-write cycle; different users never
// contend on it.
package session

import (
	"sync"
	"time"

	"wordcards/internal/domain"
)

type entry struct {
	mu sync.Mutex

	// guarded by mu
	state    domain.Session
	lastUsed time.Time

	// guarded by Store.mu
	refs int
}

// Store is an in-memory per-user session store
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
	now     func() time.Time
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		entries: make(map[int64]*entry),
		now:     time.Now,
	}
}

// Handle is exclusive access to one user's session.
// It must be released exactly once.
type Handle struct {
	store *Store
	e     *entry
}

// Acquire locks the user's session, creating an idle one for unseen users.
// It blocks while another handle for the same user is held.
func (s *Store) Acquire(userID int64) *Handle {
	s.mu.Lock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{state: domain.Idle{}, lastUsed: s.now()}
		s.entries[userID] = e
	}
	e.refs++
	s.mu.Unlock()

	e.mu.Lock()
	return &Handle{store: s, e: e}
}

// State returns the current session
func (h *Handle) State() domain.Session {
	return h.e.state
}

// Set replaces the session
func (h *Handle) Set(state domain.Session) {
	if state == nil {
		state = domain.Idle{}
	}
	h.e.state = state
}

// Release unlocks the session
func (h *Handle) Release() {
	h.e.lastUsed = h.store.now()
	h.e.mu.Unlock()

	h.store.mu.Lock()
	h.e.refs--
	h.store.mu.Unlock()
}

// Peek returns the user's current session once any in-flight transition finishes
func (s *Store) Peek(userID int64) domain.Session {
	h := s.Acquire(userID)
	defer h.Release()
	return h.State()
}

// Len returns the number of tracked sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts sessions unused for longer than ttl and returns how many were removed.
// An evicted user starts over from Idle.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for userID, e := range s.entries {
		// refs == 0 means nobody holds or waits for e.mu
		if e.refs > 0 {
			continue
		}
		if e.lastUsed.After(cutoff) {
			continue
		}
		delete(s.entries, userID)
		removed++
	}
	return removed
}
