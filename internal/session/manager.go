package session

import (
	"context"
	"net/http"
	"time"

	"technews/internal/models"
	repo "technews/internal/repository"
	"technews/internal/worker"

	"github.com/google/uuid"
)

const CookieName = "technews_session"

// Manager is the authorization gate between cookies and the sessions
// table. Session records live in the database so logins survive
// restarts; expiry is a sliding TTL bumped on each authenticated
// request.
type Manager struct {
	sessions repo.Sessions
	ttl      time.Duration
	wp       *worker.Pool
}

// NewManager builds a Manager. wp may be nil, in which case session
// touches happen synchronously on the request path.
func NewManager(sessions repo.Sessions, ttl time.Duration, wp *worker.Pool) *Manager {
	return &Manager{sessions: sessions, ttl: ttl, wp: wp}
}

// Create starts a session for userID and sets the cookie. Any previous
// sessions for the user are replaced.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, userID int64) error {
	_ = m.sessions.DeleteByUser(ctx, userID)

	now := time.Now()
	s := models.Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		ExpiresAt:  now.Add(m.ttl),
		LastSeenAt: now,
	}
	if err := m.sessions.Create(ctx, s); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.ExpiresAt,
	})
	return nil
}

// Destroy removes the server-side session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		_ = m.sessions.Delete(ctx, c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// UserID resolves the request's session cookie to an authenticated
// user id. A hit bumps last_seen_at and expires_at.
func (m *Manager) UserID(r *http.Request) (int64, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	s, err := m.sessions.Get(r.Context(), c.Value)
	if err != nil {
		return 0, false
	}
	now := time.Now()
	if now.After(s.ExpiresAt) {
		return 0, false
	}
	m.touch(s.ID, now)
	return s.UserID, true
}

func (m *Manager) touch(id string, now time.Time) {
	expires := now.Add(m.ttl)
	if m.wp == nil {
		_ = m.sessions.Touch(context.Background(), id, now, expires)
		return
	}
	m.wp.Submit(func() {
		_ = m.sessions.Touch(context.Background(), id, now, expires)
	})
}

// PurgeExpired deletes sessions past their expiry. main runs this on a
// ticker through the worker pool.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.sessions.PurgeExpired(ctx, time.Now())
}
