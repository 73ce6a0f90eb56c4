package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookrate/internal/core"
)

// Session holds one signed-in user's state between page loads: who they
// are and the book sample currently on their page.
type Session struct {
	ID       string
	UserID   int
	Username string
	Books    []core.Book

	expiresAt time.Time
}

// SessionStore is an in-memory session table keyed by random UUID.
// Sessions expire after the configured TTL; expired entries are dropped
// lazily on access and whenever a new session is created.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewSessionStore returns an empty store with the given session TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session for the given user and returns it.
func (s *SessionStore) Create(userID int, username string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Opportunistic sweep so abandoned sessions don't accumulate.
	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}

	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		expiresAt: now.Add(s.ttl),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session for id, or ok=false when it does not exist
// or has expired. The returned value is a copy; use SetBooks to mutate
// the stored sample.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, id)
		return Session{}, false
	}
	return *sess, true
}

// SetBooks replaces the book sample stored in the session.
func (s *SessionStore) SetBooks(id string, books []core.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.Books = books
	}
}

// Delete removes the session, signing the user out.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions (expired ones may still be
// counted until swept).
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sessionFromRequest resolves the request's session cookie against the
// store.
func (srv *Server) sessionFromRequest(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(srv.cfg.Session.CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	return srv.sessions.Get(cookie.Value)
}

// setSessionCookie attaches the session ID to the response.
func (srv *Server) setSessionCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     srv.cfg.Session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(srv.cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   srv.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (srv *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     srv.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   srv.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
