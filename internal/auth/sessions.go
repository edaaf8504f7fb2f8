// Package auth implements the credential gate and in-memory sessions.
// Sessions own their threshold configuration and identify their cache
// slot, so nothing user-visible is process-global.
package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sysdash/sysdash/internal/reporting"
)

// DefaultSessionTTL bounds how long an idle login stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Session is one authenticated login.
type Session struct {
	ID        string
	User      string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu         sync.Mutex
	thresholds reporting.Thresholds
}

// Thresholds returns the session's threshold snapshot.
func (s *Session) Thresholds() reporting.Thresholds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thresholds
}

// SetThresholds replaces the session's thresholds. This is the explicit
// save action; nothing else mutates them.
func (s *Session) SetThresholds(t reporting.Thresholds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds = t
}

// SessionStore holds active sessions keyed by token.
type SessionStore struct {
	ttl time.Duration

	// onEvict, when set, is told about every session that goes away,
	// whether by logout or expiry; used to drop per-session cache slots.
	onEvict func(sessionID string)

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates a store with the given TTL (DefaultSessionTTL
// when zero or negative).
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// OnEvict registers the eviction callback.
func (st *SessionStore) OnEvict(fn func(sessionID string)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onEvict = fn
}

// Create opens a session for the user with default thresholds.
func (st *SessionStore) Create(user string) *Session {
	now := time.Now()
	s := &Session{
		ID:         uuid.NewString(),
		User:       user,
		CreatedAt:  now,
		ExpiresAt:  now.Add(st.ttl),
		thresholds: reporting.DefaultThresholds(),
	}

	st.mu.Lock()
	st.sweepLocked(now)
	st.sessions[s.ID] = s
	st.mu.Unlock()

	log.Info().Str("user", user).Msg("Session created")
	return s
}

// Validate returns the live session for the token, if any. Expired
// sessions are evicted on sight.
func (st *SessionStore) Validate(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.ExpiresAt) {
		st.evictLocked(id)
		return nil, false
	}
	return s, true
}

// Delete removes a session (logout).
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictLocked(id)
}

// Len returns the number of sessions currently held, expired or not.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) evictLocked(id string) {
	if _, ok := st.sessions[id]; !ok {
		return
	}
	delete(st.sessions, id)
	if st.onEvict != nil {
		st.onEvict(id)
	}
}

func (st *SessionStore) sweepLocked(now time.Time) {
	for id, s := range st.sessions {
		if now.After(s.ExpiresAt) {
			st.evictLocked(id)
		}
	}
}
