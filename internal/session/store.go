package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"playlist-viewer/internal/logging"
	"playlist-viewer/internal/metrics"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 24 * time.Hour

// Store keeps viewer sessions in memory, keyed by a random UUID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time

	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// NewStore creates an empty store. A non-positive ttl uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL returns how long an untouched session is kept.
func (st *Store) TTL() time.Duration {
	return st.ttl
}

// Create registers a new session.
func (st *Store) Create() *Session {
	s := newSession(uuid.NewString(), st.now)

	st.mu.Lock()
	st.sessions[s.ID()] = s
	n := len(st.sessions)
	st.mu.Unlock()

	metrics.SessionsCreatedTotal.Inc()
	metrics.ActiveSessions.Set(float64(n))
	logging.Debug("Created viewer session %s", s.ID())
	return s
}

// Get returns a live session and marks it as used.
func (st *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, false
	}
	s.touch()
	return s, true
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// unknown or expired. created reports whether a new session was made.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	if removed > 0 {
		metrics.SessionsExpiredTotal.Add(float64(removed))
		logging.Debug("Expired %d idle viewer sessions", removed)
	}
	metrics.ActiveSessions.Set(float64(n))
	return removed
}

// StartSweeper runs Sweep every interval until Stop is called.
func (st *Store) StartSweeper(interval time.Duration) {
	st.stopChan = make(chan struct{})
	st.doneChan = make(chan struct{})

	go func() {
		defer close(st.doneChan)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				st.Sweep()
			case <-st.stopChan:
				return
			}
		}
	}()
}

// Stop ends the sweeper started by StartSweeper.
func (st *Store) Stop() {
	if st.stopChan == nil {
		return
	}
	st.stopOnce.Do(func() {
		close(st.stopChan)
		<-st.doneChan
	})
}
