// Package session binds an order form and a CSRF token to each visitor
// through a cookie.
package session

import (
	"context"
	"crypto/subtle"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/goliatone/go-pizzaform/pkg/orderform"
	"github.com/google/uuid"
)

const (
	DefaultCookieName = "pizzaform_session"
	DefaultTTL        = 30 * time.Minute
)

// Session is one visitor's state. Form is safe for concurrent use.
type Session struct {
	ID        string
	CSRFToken string
	Form      *orderform.Form

	lastSeen time.Time
}

// ValidToken compares token against the session CSRF token in constant time.
func (s *Session) ValidToken(token string) bool {
	if s == nil || token == "" || s.CSRFToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.CSRFToken)) == 1
}

// FormFactory creates the form bound to a new session.
type FormFactory func() *orderform.Form

// Store keeps sessions in memory and expires them after an idle TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	newForm    FormFactory
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
	newID      func() string
	logger     *log.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithCookieName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithSecureCookies marks cookies Secure for HTTPS deployments.
func WithSecureCookies(secure bool) Option {
	return func(s *Store) {
		s.secure = secure
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides uuid generation for session ids and tokens.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore builds a store that calls newForm for every new session.
func NewStore(newForm FormFactory, options ...Option) *Store {
	s := &Store{
		sessions:   make(map[string]*Session),
		newForm:    newForm,
		ttl:        DefaultTTL,
		cookieName: DefaultCookieName,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.newForm == nil {
		s.newForm = func() *orderform.Form { return orderform.New(nil) }
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return s
}

// CookieName returns the cookie carrying the session id.
func (s *Store) CookieName() string {
	return s.cookieName
}

// Load returns the session referenced by the request cookie, creating one
// (and setting the cookie) when it is missing or expired.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		if sess, ok := s.Lookup(cookie.Value); ok {
			return sess
		}
	}
	sess := s.create()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl / time.Second),
	})
	return sess
}

// Lookup returns a live session and refreshes its idle timer.
func (s *Store) Lookup(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *Store) create() *Session {
	sess := &Session{
		ID:        s.newID(),
		CSRFToken: s.newID(),
		Form:      s.newForm(),
	}
	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.logger.Printf("session: created %s", sess.ID)
	return sess
}

// Sweep drops expired sessions and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps on interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Printf("session: expired %d", n)
			}
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.lastSeen) > s.ttl
}
