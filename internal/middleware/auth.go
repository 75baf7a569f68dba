package middleware

import (
	"context"
	"net/http"

	"technews/internal/api/httpx"
	"technews/internal/session"
)

type ctxKey string

const ctxUserIDKey ctxKey = "uid"

// UserID returns the authenticated user's id injected by RequireSession.
func UserID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(int64)
	return v, ok
}

type SessionAuth struct {
	Sessions *session.Manager
}

func NewSessionAuth(m *session.Manager) *SessionAuth {
	return &SessionAuth{Sessions: m}
}

// RequireSession guards API mutations: anonymous requests get 401 and
// the resolved user id is taken from the session record, never from
// the request body.
func (m *SessionAuth) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := m.Sessions.UserID(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserIDKey, uid)))
	})
}

// RequireSessionPage is the HTML counterpart: anonymous visitors are
// redirected to the login view.
func (m *SessionAuth) RequireSessionPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := m.Sessions.UserID(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserIDKey, uid)))
	})
}
