package auditlog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/dailyhub/internal/app/features/auditlog"
	"github.com/dalemusser/dailyhub/internal/app/store/audit"
	"github.com/dalemusser/dailyhub/internal/testutil"
	"go.uber.org/zap"
)

type recordingQuerier struct {
	got    audit.QueryFilter
	events []audit.Event
	total  int64
	err    error
}

func (q *recordingQuerier) Query(_ context.Context, f audit.QueryFilter) ([]audit.Event, error) {
	q.got = f
	return q.events, q.err
}

func (q *recordingQuerier) CountByFilter(context.Context, audit.QueryFilter) (int64, error) {
	return q.total, q.err
}

func serve(t *testing.T, h *auditlog.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.WithUser(httptest.NewRequest("GET", target, nil), testutil.TestUser("me@example.com"))
	rec := httptest.NewRecorder()
	auditlog.Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestServeList_ScopesToCaller(t *testing.T) {
	q := &recordingQuerier{}
	h := auditlog.NewHandler(q, zap.NewNop())
	u := testutil.TestUser("scoped@example.com")

	req := testutil.WithUser(httptest.NewRequest("GET", "/?page=3&category=auth&start_date=2026-01-01&end_date=2026-01-31", nil), u)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if q.got.UserID != u.UserID {
		t.Errorf("filter user = %q, want %q", q.got.UserID, u.UserID)
	}
	if q.got.Category != audit.CategoryAuth || q.got.Offset != 100 || q.got.Limit != 50 {
		t.Errorf("filter = %+v", q.got)
	}
	if q.got.StartTime == nil || q.got.EndTime == nil || !q.got.EndTime.After(*q.got.StartTime) {
		t.Fatalf("date range not applied: %+v", q.got)
	}
	if q.got.EndTime.Day() != 31 {
		t.Errorf("end of range = %v, want end of Jan 31", q.got.EndTime)
	}
}

func TestServeList_BadParams(t *testing.T) {
	h := auditlog.NewHandler(&recordingQuerier{}, zap.NewNop())
	for _, target := range []string{
		"/?page=0",
		"/?page=x",
		"/?page=9223372036854775807",
		"/?page=1000001",
		"/?category=admin",
		"/?start_date=01-02-2026",
		"/?failed=maybe",
	} {
		if rec := serve(t, h, target); rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: status = %d, want 422", target, rec.Code)
		}
	}
}

func TestServeList_LargestPageKeepsOffsetPositive(t *testing.T) {
	q := &recordingQuerier{}
	h := auditlog.NewHandler(q, zap.NewNop())
	if rec := serve(t, h, "/?page=1000000"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if q.got.Offset != 999_999*50 {
		t.Errorf("offset = %d", q.got.Offset)
	}
}

func TestServeList_FailedFilter(t *testing.T) {
	q := &recordingQuerier{}
	h := auditlog.NewHandler(q, zap.NewNop())
	if rec := serve(t, h, "/?failed=true"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !q.got.FailedLogins {
		t.Errorf("filter = %+v, want FailedLogins", q.got)
	}
	if rec := serve(t, h, "/"); rec.Code != http.StatusOK || q.got.FailedLogins {
		t.Errorf("failed should default off: %+v", q.got)
	}
}

func TestServeList_StoreError(t *testing.T) {
	h := auditlog.NewHandler(&recordingQuerier{err: errors.New("down")}, zap.NewNop())
	if rec := serve(t, h, "/"); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestServeList_RequiresUser(t *testing.T) {
	h := auditlog.NewHandler(&recordingQuerier{}, zap.NewNop())
	rec := httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestServeList_FromMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := testutil.TestUser("mine@example.com")
	base := time.Now().UTC().Add(-time.Hour)
	for i, ev := range []string{audit.EventRegistered, audit.EventLoginSuccess, audit.EventLoginFailedWrongPassword} {
		err := store.Log(ctx, audit.Event{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Category:  audit.CategoryAuth,
			EventType: ev,
			UserID:    me.UserID,
			IP:        "10.0.0.1",
			Success:   ev != audit.EventLoginFailedWrongPassword,
		})
		if err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
	if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: "someone-else"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	h := auditlog.NewHandler(store, zap.NewNop())
	req := testutil.WithUser(httptest.NewRequest("GET", "/", nil), me)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	var body struct {
		Items []struct {
			EventType string `json:"event_type"`
			Success   bool   `json:"success"`
		} `json:"items"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.Total != 3 || len(body.Items) != 3 || body.TotalPages != 1 {
		t.Fatalf("body = %+v", body)
	}
	if body.Items[0].EventType != audit.EventLoginFailedWrongPassword || body.Items[0].Success {
		t.Errorf("newest item = %+v", body.Items[0])
	}
}

func TestServeList_FailedFromMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := testutil.TestUser("failures@example.com")
	for _, e := range []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: me.UserID, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, UserID: me.UserID},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, UserID: "someone-else"},
	} {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	h := auditlog.NewHandler(store, zap.NewNop())
	req := testutil.WithUser(httptest.NewRequest("GET", "/?failed=true", nil), me)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	var body struct {
		Items []struct {
			EventType string `json:"event_type"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.Total != 1 || len(body.Items) != 1 || body.Items[0].EventType != audit.EventLoginFailedWrongPassword {
		t.Fatalf("body = %+v", body)
	}
}
