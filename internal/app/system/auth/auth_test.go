package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/domain/models"
	"go.uber.org/zap"
)

// stubUsers is an in-memory auth.UserFetcher that counts lookups.
type stubUsers struct {
	byEmail map[string]*models.User
	err     error
	calls   int
}

func (s *stubUsers) FetchByEmail(_ context.Context, email string) (*models.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.byEmail[email], nil
}

func newTestGate(t *testing.T) (*auth.Gate, *auth.TokenService, *stubUsers) {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	users := &stubUsers{byEmail: map[string]*models.User{
		"ada@example.com": {UserID: "u-1", Email: "ada@example.com", FullName: "Ada"},
	}}
	return auth.NewGate(tokens, users, zap.NewNop()), tokens, users
}

func protected(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.CurrentUser(r)
		if !ok {
			t.Error("expected user in context")
		} else if u.UserID != wantUser {
			t.Errorf("user id: got %q, want %q", u.UserID, wantUser)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Detail
}

func TestRequireBearer_NoHeader_Returns403(t *testing.T) {
	gate, _, users := newTestGate(t)

	req := httptest.NewRequest("GET", "/api/reminders", nil)
	rec := httptest.NewRecorder()
	gate.RequireBearer(protected(t, "")).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if got := detailOf(t, rec); got != "Not authenticated" {
		t.Errorf("detail: got %q", got)
	}
	if users.calls != 0 {
		t.Errorf("store touched %d times", users.calls)
	}
}

func TestRequireBearer_WrongScheme_Returns403(t *testing.T) {
	gate, _, users := newTestGate(t)

	tests := []struct {
		header string
		detail string
	}{
		{"Basic YWRhOnB3", "Invalid authentication credentials"},
		{"Token abc.def.ghi", "Invalid authentication credentials"},
		{"Bearer", "Not authenticated"},
		{"Bearer    ", "Not authenticated"},
		{"token-without-scheme", "Not authenticated"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/api/todos", nil)
		req.Header.Set("Authorization", tt.header)
		rec := httptest.NewRecorder()
		gate.RequireBearer(protected(t, "")).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("header %q: status got %d, want 403", tt.header, rec.Code)
		}
		if got := detailOf(t, rec); got != tt.detail {
			t.Errorf("header %q: detail got %q, want %q", tt.header, got, tt.detail)
		}
	}
	if users.calls != 0 {
		t.Errorf("store touched %d times", users.calls)
	}
}

func TestRequireBearer_InvalidTokens_Return401(t *testing.T) {
	gate, tokens, users := newTestGate(t)

	expired, err := tokens.Issue("ada@example.com", -time.Minute, "")
	if err != nil {
		t.Fatal(err)
	}
	reset, err := tokens.IssueReset("ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	foreign, _ := auth.NewTokenService("some-other-secret-with-enough-length", time.Hour)
	forged, _ := foreign.IssueSession("ada@example.com")

	cases := map[string]string{
		"malformed": "not.a.jwt",
		"expired":   expired,
		"forged":    forged,
		"reset":     reset,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/auth/me", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			rec := httptest.NewRecorder()
			gate.RequireBearer(protected(t, "")).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rec.Code)
			}
			if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("WWW-Authenticate: got %q", got)
			}
			if got := detailOf(t, rec); got != "Could not validate credentials" {
				t.Errorf("detail: got %q", got)
			}
		})
	}
	if users.calls != 0 {
		t.Errorf("store touched %d times for invalid tokens", users.calls)
	}
}

func TestRequireBearer_UnknownSubject_Returns401(t *testing.T) {
	gate, tokens, users := newTestGate(t)

	tok, _ := tokens.IssueSession("ghost@example.com")
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	gate.RequireBearer(protected(t, "")).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if users.calls != 1 {
		t.Errorf("lookups: got %d, want 1", users.calls)
	}
}

func TestRequireBearer_StoreFailure_Returns500(t *testing.T) {
	gate, tokens, users := newTestGate(t)
	users.err = errors.New("server selection timeout")

	tok, _ := tokens.IssueSession("ada@example.com")
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	gate.RequireBearer(protected(t, "")).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

func TestRequireBearer_ValidToken_InjectsUser(t *testing.T) {
	gate, tokens, users := newTestGate(t)

	tok, _ := tokens.IssueSession("ada@example.com")
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	rec := httptest.NewRecorder()
	gate.RequireBearer(protected(t, "u-1")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if users.calls != 1 {
		t.Errorf("lookups: got %d, want exactly 1", users.calls)
	}
}

func TestCurrentUser_Absent(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := auth.CurrentUser(req); ok {
		t.Error("expected no user")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		got, ok := auth.BearerToken(req)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BearerToken(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}
