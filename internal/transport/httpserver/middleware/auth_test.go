package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"home-inventory-go/internal/auth"
	userdomain "home-inventory-go/internal/domain/user"
	"home-inventory-go/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "text")
}

type fakeResolver struct {
	users map[string]*userdomain.User
}

func (f *fakeResolver) Resolve(ctx context.Context, userID string) (*userdomain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return u, nil
}

func newSessionAuth(t *testing.T, ttl time.Duration) (*SessionAuth, *auth.TokenService, *fakeResolver) {
	t.Helper()
	tokens := auth.NewTokenService("test-secret", "home-inventory", ttl)
	resolver := &fakeResolver{users: map[string]*userdomain.User{
		"user-1": {ID: "user-1", Email: "a@b.com", Name: "a"},
	}}
	return NewSessionAuth(tokens, resolver, "session", testLogger()), tokens, resolver
}

func echoUser(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			t.Fatal("user missing from context")
		}
		*called = true
		w.Write([]byte(u.ID))
	})
}

func TestSessionAuthCookie(t *testing.T) {
	sa, tokens, _ := newSessionAuth(t, time.Hour)
	token, err := tokens.Generate("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	called := false
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rec := httptest.NewRecorder()
	sa.Middleware(echoUser(t, &called)).ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got status %d", rec.Code)
	}
	if rec.Body.String() != "user-1" {
		t.Fatalf("wrong user in context: %q", rec.Body.String())
	}
}

func TestSessionAuthBearerHeader(t *testing.T) {
	sa, tokens, _ := newSessionAuth(t, time.Hour)
	token, err := tokens.Generate("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	called := false
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	sa.Middleware(echoUser(t, &called)).ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected pass-through, got status %d", rec.Code)
	}
}

func TestSessionAuthMissingToken(t *testing.T) {
	sa, _, _ := newSessionAuth(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	sa.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	assertErrorBody(t, rec, "invalid token")
}

func TestSessionAuthExpiredToken(t *testing.T) {
	sa, tokens, _ := newSessionAuth(t, -time.Minute)
	token, err := tokens.Generate("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	sa.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionAuthVanishedUser(t *testing.T) {
	sa, tokens, resolver := newSessionAuth(t, time.Hour)
	token, err := tokens.Generate("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	delete(resolver.users, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rec := httptest.NewRecorder()
	sa.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	assertErrorBody(t, rec, "User was not found")
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, message string) {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != message {
		t.Fatalf("error = %q, want %q", body["error"], message)
	}
	if body["status"] != "error" {
		t.Fatalf("status = %q, want error", body["status"])
	}
}
