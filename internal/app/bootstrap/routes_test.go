package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/dailyhub/internal/app/system/ratelimit"
	"github.com/dalemusser/dailyhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cfg := validAppConfig()
	cfg.BcryptCost = 4
	core := &config.CoreConfig{Env: "dev"}
	deps := DBDeps{
		MongoClient:   db.Client(),
		MongoDatabase: db,
		AuthLimiter:   ratelimit.New(100, time.Minute),
	}
	t.Cleanup(deps.AuthLimiter.Close)

	if err := EnsureSchema(ctx, core, cfg, deps, zap.NewNop()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	h, err := BuildHandler(core, cfg, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	return h
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBuildHandler_EndToEnd(t *testing.T) {
	h := newTestServer(t)

	rec := call(t, h, "POST", "/api/auth/register", "", map[string]string{
		"email": "e2e@example.com", "password": "pw", "full_name": "End To End",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	var reg struct {
		AccessToken string `json:"access_token"`
	}
	testutil.DecodeJSON(t, rec, &reg)

	if rec := call(t, h, "GET", "/api/auth/me", reg.AccessToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("me: %d", rec.Code)
	}

	rec = call(t, h, "POST", "/api/todos", reg.AccessToken, map[string]any{"title": "Buy milk"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create todo: %d %s", rec.Code, rec.Body.String())
	}
	rec = call(t, h, "GET", "/api/todos", reg.AccessToken, nil)
	var todos []map[string]any
	testutil.DecodeJSON(t, rec, &todos)
	if len(todos) != 1 || todos[0]["title"] != "Buy milk" {
		t.Fatalf("todos = %v", todos)
	}

	rec = call(t, h, "POST", "/api/reminders", reg.AccessToken, map[string]any{
		"title": "Standup", "datetime": "2026-01-05T09:30:00", "priority": "Medium",
		"recurrence": "custom", "recurrence_days": []string{"Monday", "Wednesday"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create reminder: %d %s", rec.Code, rec.Body.String())
	}

	if rec := call(t, h, "GET", "/api/weather?lat=1&lon=2", reg.AccessToken, nil); rec.Code != http.StatusOK {
		t.Errorf("weather: %d", rec.Code)
	}

	rec = call(t, h, "GET", "/api/activity", reg.AccessToken, nil)
	var activity struct {
		Items []struct {
			EventType string `json:"event_type"`
		} `json:"items"`
	}
	testutil.DecodeJSON(t, rec, &activity)
	if len(activity.Items) != 1 || activity.Items[0].EventType != "registered" {
		t.Errorf("activity = %+v", activity)
	}
}

func TestBuildHandler_ProtectedRoutesNeedBearer(t *testing.T) {
	h := newTestServer(t)
	for _, path := range []string{"/api/reminders", "/api/todos", "/api/weather?lat=1&lon=1", "/api/activity", "/api/auth/me"} {
		rec := call(t, h, "GET", path, "", nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s without token: %d, want 403", path, rec.Code)
		}
		rec = call(t, h, "GET", path, "garbage", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s with bad token: %d, want 401", path, rec.Code)
		}
	}
}

func TestBuildHandler_DuplicateRegistrationHitsUniqueIndex(t *testing.T) {
	h := newTestServer(t)
	body := map[string]string{"email": "twice@example.com", "password": "pw", "full_name": "Twice"}
	if rec := call(t, h, "POST", "/api/auth/register", "", body); rec.Code != http.StatusOK {
		t.Fatalf("first register: %d", rec.Code)
	}
	rec := call(t, h, "POST", "/api/auth/register", "", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second register: %d, want 400", rec.Code)
	}
}

func TestBuildHandler_HealthMetricsAndFallbacks(t *testing.T) {
	h := newTestServer(t)

	if rec := call(t, h, "GET", "/api/health", "", nil); rec.Code != http.StatusOK {
		t.Errorf("health: %d", rec.Code)
	}

	rec := call(t, h, "GET", "/nope", "", nil)
	if rec.Code != http.StatusNotFound || testutil.Detail(t, rec) != "Not Found" {
		t.Errorf("unknown route: %d %s", rec.Code, rec.Body.String())
	}
	rec = call(t, h, "PATCH", "/api/health", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong method: %d", rec.Code)
	}

	rec = call(t, h, "GET", "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dailyhub_http_requests_total") {
		t.Error("request counter missing from /metrics")
	}
}

func TestBuildHandler_RejectsEmptySecret(t *testing.T) {
	cfg := validAppConfig()
	cfg.JWTSecret = ""
	if _, err := BuildHandler(&config.CoreConfig{}, cfg, DBDeps{}, zap.NewNop()); err == nil {
		t.Error("expected error for empty secret")
	}
}
