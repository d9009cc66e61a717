package todos_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/dailyhub/internal/app/features/todos"
	todostore "github.com/dalemusser/dailyhub/internal/app/store/todos"
	"github.com/dalemusser/dailyhub/internal/app/system/inputval"
	"github.com/dalemusser/dailyhub/internal/domain/models"
	"github.com/dalemusser/dailyhub/internal/testutil"
	"go.uber.org/zap"
)

type env struct {
	store  *todostore.Store
	router http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := todostore.New(testutil.SetupTestDB(t))
	return &env{store: store, router: todos.Routes(todos.NewHandler(store, inputval.New(), zap.NewNop()))}
}

func do(t *testing.T, router http.Handler, u *models.User, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, method, path, body)
	if u != nil {
		req = testutil.WithUser(req, u)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func mustCreate(t *testing.T, e *env, u *models.User, title string) models.Todo {
	t.Helper()
	rec := do(t, e.router, u, "POST", "/", map[string]any{"title": title})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status %d body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Message string      `json:"message"`
		Todo    models.Todo `json:"todo"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.Message != "Todo created successfully" {
		t.Errorf("message = %q", body.Message)
	}
	return body.Todo
}

func list(t *testing.T, e *env, u *models.User) []models.Todo {
	t.Helper()
	rec := do(t, e.router, u, "GET", "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var out []models.Todo
	testutil.DecodeJSON(t, rec, &out)
	return out
}

func TestRoundTrip(t *testing.T) {
	e := newEnv(t)
	u := testutil.TestUser("milk@example.com")

	created := mustCreate(t, e, u, "Buy milk")
	if created.Completed || created.Description != "" || created.UserID != u.UserID {
		t.Errorf("created = %+v", created)
	}

	got := list(t, e, u)
	if len(got) != 1 || got[0].TodoID != created.TodoID || got[0].Title != "Buy milk" {
		t.Fatalf("list = %+v", got)
	}

	rec := do(t, e.router, u, "PUT", "/"+created.TodoID, map[string]any{"title": "Buy oat milk", "completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d", rec.Code)
	}
	got = list(t, e, u)
	if got[0].Title != "Buy oat milk" || !got[0].Completed {
		t.Errorf("after update = %+v", got[0])
	}

	rec = do(t, e.router, u, "DELETE", "/"+created.TodoID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}
	var msg struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &msg)
	if msg.Message != "Todo deleted successfully" {
		t.Errorf("message = %q", msg.Message)
	}
	if got := list(t, e, u); len(got) != 0 {
		t.Errorf("list after delete = %+v", got)
	}
}

func TestUpdate_IsFullReplace(t *testing.T) {
	e := newEnv(t)
	u := testutil.TestUser("replace@example.com")

	rec := do(t, e.router, u, "POST", "/", map[string]any{"title": "Pack", "description": "passport", "completed": true})
	var body struct {
		Todo models.Todo `json:"todo"`
	}
	testutil.DecodeJSON(t, rec, &body)

	// Omitted description and completed reset to their zero values.
	if rec := do(t, e.router, u, "PUT", "/"+body.Todo.TodoID, map[string]any{"title": "Pack bag"}); rec.Code != http.StatusOK {
		t.Fatalf("update: status %d", rec.Code)
	}
	got := list(t, e, u)[0]
	if got.Title != "Pack bag" || got.Description != "" || got.Completed {
		t.Errorf("after replace = %+v", got)
	}
}

func TestList_NewestFirst(t *testing.T) {
	e := newEnv(t)
	u := testutil.TestUser("order@example.com")
	mustCreate(t, e, u, "first")
	mustCreate(t, e, u, "second")
	mustCreate(t, e, u, "third")

	got := list(t, e, u)
	if len(got) != 3 {
		t.Fatalf("got %d todos", len(got))
	}
	if got[0].Title != "third" || got[2].Title != "first" {
		t.Errorf("order = %q %q %q", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestForeignTodoIsNotFound(t *testing.T) {
	e := newEnv(t)
	owner := testutil.TestUser("owner@example.com")
	other := testutil.TestUser("other@example.com")
	todo := mustCreate(t, e, owner, "Private")

	if got := list(t, e, other); len(got) != 0 {
		t.Errorf("other user sees %d todos", len(got))
	}
	for _, method := range []string{"PUT", "DELETE"} {
		rec := do(t, e.router, other, method, "/"+todo.TodoID, map[string]any{"title": "x"})
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", method, rec.Code)
		}
		if got := testutil.Detail(t, rec); got != "Todo not found" {
			t.Errorf("%s: detail = %q", method, got)
		}
	}
	if got := list(t, e, owner); len(got) != 1 || got[0].Title != "Private" {
		t.Errorf("owner's todo changed: %+v", got)
	}
}

type stubStore struct{ err error }

func (s stubStore) List(context.Context, string) ([]models.Todo, error) { return nil, s.err }
func (s stubStore) Create(context.Context, string, models.TodoContent) (models.Todo, error) {
	return models.Todo{}, s.err
}
func (s stubStore) Replace(context.Context, string, string, models.TodoContent) error { return s.err }
func (s stubStore) Delete(context.Context, string, string) error                     { return s.err }

func TestCreate_RequiresTitle(t *testing.T) {
	router := todos.Routes(todos.NewHandler(stubStore{err: errors.New("unreachable")}, inputval.New(), zap.NewNop()))
	u := testutil.TestUser("t@example.com")

	for _, body := range []map[string]any{{}, {"title": ""}, {"title": "<i></i>"}, {"title": "x", "completed": "yes"}} {
		rec := do(t, router, u, "POST", "/", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("body %v: status = %d, want 422", body, rec.Code)
		}
	}
}

func TestStoreFailureIsInternalError(t *testing.T) {
	router := todos.Routes(todos.NewHandler(stubStore{err: errors.New("boom")}, inputval.New(), zap.NewNop()))
	rec := do(t, router, testutil.TestUser("f@example.com"), "POST", "/", map[string]any{"title": "x"})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
