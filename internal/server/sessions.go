package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

// CookieName is the cookie carrying a client's workflow session id.
const CookieName = "incidentdesk_session"

// DefaultSessionTTL is how long an untouched workflow session is kept.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	ctrl     *workflow.Controller
	lastSeen time.Time
}

// Sessions gives each client its own workflow controller, keyed by a UUID
// cookie. Idle sessions are closed after TTL.
type Sessions struct {
	mu      sync.Mutex
	m       map[uuid.UUID]*session
	newCtrl func() *workflow.Controller
	ttl     time.Duration
	now     func() time.Time
}

func NewSessions(newController func() *workflow.Controller, ttl time.Duration, now func() time.Time) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Sessions{
		m:       make(map[uuid.UUID]*session),
		newCtrl: newController,
		ttl:     ttl,
		now:     now,
	}
}

// Controller returns the controller for the request's session, creating a
// session (and setting its cookie on w) when the request has none or an
// unknown one.
func (s *Sessions) Controller(w http.ResponseWriter, r *http.Request) *workflow.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.prune(now)

	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := s.m[id]; ok {
				sess.lastSeen = now
				return sess.ctrl
			}
		}
	}

	id := uuid.New()
	sess := &session{ctrl: s.newCtrl(), lastSeen: now}
	s.m[id] = sess
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess.ctrl
}

func (s *Sessions) prune(now time.Time) {
	for id, sess := range s.m {
		if now.Sub(sess.lastSeen) > s.ttl {
			sess.ctrl.Close()
			delete(s.m, id)
		}
	}
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Close stops every session's controller.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.m {
		sess.ctrl.Close()
		delete(s.m, id)
	}
}
