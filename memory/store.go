// Package memory provides an in-process session store. Sessions live only
// as long as the process; nothing is written to disk.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/sangga"
	"github.com/fwojciec/sangga/bloom"
	"github.com/google/uuid"
)

// DefaultIdleTimeout is how long an untouched session is kept.
const DefaultIdleTimeout = 2 * time.Hour

// Compile-time interface verification.
var _ sangga.SessionStore = (*SessionStore)(nil)

// SessionStore implements sangga.SessionStore in memory.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*entry
	idle     time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// NewSeenSet creates the seen-listing set of a new session.
	// Defaults to a Bloom filter with default sizing.
	NewSeenSet func() sangga.SeenSet

	cancel context.CancelFunc
	done   chan struct{}
}

type entry struct {
	session *sangga.Session
	used    time.Time
}

// NewSessionStore creates a store that expires sessions idle for longer
// than idle. A non-positive idle selects DefaultIdleTimeout.
func NewSessionStore(idle time.Duration) *SessionStore {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &SessionStore{
		sessions: make(map[string]*entry),
		idle:     idle,
		Now:      time.Now,
		NewSeenSet: func() sangga.SeenSet {
			return bloom.NewFilter(bloom.DefaultCapacity, bloom.DefaultFPRate)
		},
	}
}

// Open starts a background sweep of expired sessions every interval.
func (s *SessionStore) Open(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Close stops the background sweep, if running.
func (s *SessionStore) Close() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel = nil
	}
	return nil
}

// CreateSession creates a session with a new random ID and default filters.
func (s *SessionStore) CreateSession(_ context.Context) (*sangga.Session, error) {
	session := sangga.NewSession(uuid.New().String(), s.NewSeenSet())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = &entry{session: session, used: s.Now()}
	return session, nil
}

// FindSessionByID retrieves a session and refreshes its idle timer.
func (s *SessionStore) FindSessionByID(_ context.Context, id string) (*sangga.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, sangga.Errorf(sangga.ENOTFOUND, "session not found")
	}
	now := s.Now()
	if s.expired(e, now) {
		delete(s.sessions, id)
		return nil, sangga.Errorf(sangga.ENOTFOUND, "session not found")
	}
	e.used = now
	return e.session, nil
}

// DeleteSession removes a session.
func (s *SessionStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return sangga.Errorf(sangga.ENOTFOUND, "session not found")
	}
	delete(s.sessions, id)
	return nil
}

// Sweep removes expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	n := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions, including expired ones not
// yet swept.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) expired(e *entry, now time.Time) bool {
	return now.Sub(e.used) > s.idle
}
