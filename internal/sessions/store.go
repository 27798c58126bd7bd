package sessions

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session holds the WHOOP OAuth token for one logged-in browser.
type Session struct {
	ID        string
	Token     *oauth2.Token
	ExpiresAt time.Time
}

// Store is an in-memory TTL session store. Sessions do not survive a
// restart; the user logs in again.
type Store struct {
	mu    sync.Mutex
	items map[string]*Session
	ttl   time.Duration
	now   func() time.Time
}

// NewStore builds a Store with the given session lifetime.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		items: make(map[string]*Session),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create registers a new session for the given token and returns it.
func (s *Store) Create(token *oauth2.Token) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.mu.Lock()
	s.items[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session for id, or ErrNotFound if missing or expired.
// Expired sessions are removed on access.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.items, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

// UpdateToken stores a refreshed OAuth token on an existing session.
func (s *Store) UpdateToken(id string, token *oauth2.Token) {
	s.mu.Lock()
	if sess, ok := s.items[id]; ok {
		sess.Token = token
	}
	s.mu.Unlock()
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
