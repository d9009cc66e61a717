package todostore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/dailyhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no todo matches both the id and the owner.
var ErrNotFound = errors.New("todo not found")

type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("todos"),
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func ownerFilter(userID, todoID string) bson.M {
	return bson.M{"todo_id": todoID, "user_id": userID}
}

// List returns every todo owned by userID, newest first. The result is
// never nil.
func (s *Store) List(ctx context.Context, userID string) ([]models.Todo, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Todo{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one todo if userID owns it.
func (s *Store) Get(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	var t models.Todo
	err := s.c.FindOne(ctx, ownerFilter(userID, todoID)).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create stores a new todo for userID.
func (s *Store) Create(ctx context.Context, userID string, c models.TodoContent) (models.Todo, error) {
	t := models.Todo{
		TodoID:      uuid.NewString(),
		UserID:      userID,
		Title:       c.Title,
		Description: c.Description,
		Completed:   c.Completed,
		CreatedAt:   s.now(),
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Todo{}, err
	}
	return t, nil
}

// Replace overwrites title, description and completed in one write.
func (s *Store) Replace(ctx context.Context, userID, todoID string, c models.TodoContent) error {
	res, err := s.c.UpdateOne(ctx, ownerFilter(userID, todoID), bson.M{"$set": bson.M{
		"title":       c.Title,
		"description": c.Description,
		"completed":   c.Completed,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the todo if userID owns it.
func (s *Store) Delete(ctx context.Context, userID, todoID string) error {
	res, err := s.c.DeleteOne(ctx, ownerFilter(userID, todoID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
