package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"technews/internal/models"
	"technews/internal/repository/memory"

	"github.com/google/uuid"
)

func newFixture(t *testing.T, ttl time.Duration) (*memory.Store, *Manager, int64) {
	t.Helper()
	store := memory.NewStore()
	u, err := store.Users().Create(context.Background(), "alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("user create failed: %v", err)
	}
	// nil pool so touches run synchronously
	return store, NewManager(store.Sessions(), ttl, nil), u.ID
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestManagerCreateAndResolve(t *testing.T) {
	ctx := context.Background()
	_, mgr, uid := newFixture(t, time.Hour)

	rec := httptest.NewRecorder()
	if err := mgr.Create(ctx, rec, uid); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	c := sessionCookie(t, rec)
	if c.Value == "" {
		t.Fatal("cookie value empty")
	}
	if !c.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	got, ok := mgr.UserID(req)
	if !ok || got != uid {
		t.Errorf("UserID = (%d, %v), want (%d, true)", got, ok, uid)
	}
}

func TestManagerNoCookie(t *testing.T) {
	_, mgr, _ := newFixture(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := mgr.UserID(req); ok {
		t.Error("request without cookie should not resolve")
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: uuid.NewString()})
	if _, ok := mgr.UserID(req); ok {
		t.Error("unknown session id should not resolve")
	}
}

func TestManagerReplacesPriorSession(t *testing.T) {
	ctx := context.Background()
	_, mgr, uid := newFixture(t, time.Hour)

	rec1 := httptest.NewRecorder()
	if err := mgr.Create(ctx, rec1, uid); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	old := sessionCookie(t, rec1)

	rec2 := httptest.NewRecorder()
	if err := mgr.Create(ctx, rec2, uid); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(old)
	if _, ok := mgr.UserID(req); ok {
		t.Error("old session should have been replaced")
	}
}

func TestManagerExpiry(t *testing.T) {
	ctx := context.Background()
	_, mgr, uid := newFixture(t, -time.Minute)

	rec := httptest.NewRecorder()
	if err := mgr.Create(ctx, rec, uid); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, rec))
	if _, ok := mgr.UserID(req); ok {
		t.Error("expired session should not resolve")
	}
}

func TestManagerTouchSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	store, mgr, uid := newFixture(t, time.Hour)

	rec := httptest.NewRecorder()
	if err := mgr.Create(ctx, rec, uid); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	c := sessionCookie(t, rec)

	before, err := store.Sessions().Get(ctx, c.Value)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if _, ok := mgr.UserID(req); !ok {
		t.Fatal("session should resolve")
	}

	after, err := store.Sessions().Get(ctx, c.Value)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !after.ExpiresAt.After(before.ExpiresAt) {
		t.Errorf("expiry not advanced: before=%v after=%v", before.ExpiresAt, after.ExpiresAt)
	}
	if !after.LastSeenAt.After(before.LastSeenAt) {
		t.Errorf("last_seen_at not advanced: before=%v after=%v", before.LastSeenAt, after.LastSeenAt)
	}
}

func TestManagerDestroy(t *testing.T) {
	ctx := context.Background()
	_, mgr, uid := newFixture(t, time.Hour)

	rec := httptest.NewRecorder()
	if err := mgr.Create(ctx, rec, uid); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	c := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	req.AddCookie(c)
	rec2 := httptest.NewRecorder()
	mgr.Destroy(ctx, rec2, req)

	cleared := sessionCookie(t, rec2)
	if cleared.Value != "" {
		t.Errorf("cookie not cleared: %q", cleared.Value)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(c)
	if _, ok := mgr.UserID(req2); ok {
		t.Error("destroyed session should not resolve")
	}
}

func TestManagerPurgeExpired(t *testing.T) {
	ctx := context.Background()
	store, mgr, uid := newFixture(t, time.Hour)

	now := time.Now()
	live := models.Session{ID: uuid.NewString(), UserID: uid, ExpiresAt: now.Add(time.Hour), LastSeenAt: now}
	dead := models.Session{ID: uuid.NewString(), UserID: uid, ExpiresAt: now.Add(-time.Hour), LastSeenAt: now.Add(-2 * time.Hour)}
	for _, s := range []models.Session{live, dead} {
		if err := store.Sessions().Create(ctx, s); err != nil {
			t.Fatalf("seed session failed: %v", err)
		}
	}

	n, err := mgr.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged, got %d", n)
	}
	if _, err := store.Sessions().Get(ctx, live.ID); err != nil {
		t.Errorf("live session should survive: %v", err)
	}
	if _, err := store.Sessions().Get(ctx, dead.ID); err == nil {
		t.Error("expired session should be gone")
	}
}
