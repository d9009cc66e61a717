package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/dailyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user whose password is the given plaintext, hashed
// at the minimum bcrypt cost so tests stay fast.
func (f *Fixtures) CreateUser(ctx context.Context, email, fullName, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	u := models.User{
		UserID:       uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		Settings:     models.DefaultSettings(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("insert user: %v", err)
	}
	return u
}

// CreateReminder inserts a reminder owned by userID.
func (f *Fixtures) CreateReminder(ctx context.Context, userID, title, datetime string) models.Reminder {
	f.t.Helper()

	r := models.Reminder{
		ReminderID: uuid.NewString(),
		UserID:     userID,
		Title:      title,
		Datetime:   datetime,
		Priority:   models.PriorityMedium,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := f.db.Collection("reminders").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("insert reminder: %v", err)
	}
	return r
}

// CreateTodo inserts a todo owned by userID.
func (f *Fixtures) CreateTodo(ctx context.Context, userID, title string) models.Todo {
	f.t.Helper()

	td := models.Todo{
		TodoID:    uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := f.db.Collection("todos").InsertOne(ctx, td); err != nil {
		f.t.Fatalf("insert todo: %v", err)
	}
	return td
}
