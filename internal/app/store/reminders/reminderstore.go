package reminderstore

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

// ErrNotFound is returned when no reminder matches both the id and the owner.
var ErrNotFound = errors.New("reminder not found")

type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("reminders"),
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func ownerFilter(userID, reminderID string) bson.M {
	return bson.M{"reminder_id": reminderID, "user_id": userID}
}

// List returns every reminder owned by userID, earliest datetime first.
// The result is never nil.
func (s *Store) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "datetime", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Reminder{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one reminder if userID owns it.
func (s *Store) Get(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	var r models.Reminder
	err := s.c.FindOne(ctx, ownerFilter(userID, reminderID)).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create stores r for its owner. It assigns reminder_id and created_at and
// starts the reminder uncompleted.
func (s *Store) Create(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	r.ReminderID = uuid.NewString()
	r.CreatedAt = s.now()
	r.UpdatedAt = nil
	r.Completed = false
	if r.Priority == "" {
		r.Priority = models.PriorityMedium
	}

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Reminder{}, err
	}
	return r, nil
}

// Update applies the provided fields and stamps updated_at in a single
// document write. An empty patch still bumps updated_at.
func (s *Store) Update(ctx context.Context, userID, reminderID string, p models.ReminderPatch) error {
	set := bson.M{"updated_at": s.now()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Datetime != nil {
		set["datetime"] = *p.Datetime
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.Recurrence != nil {
		set["recurrence"] = *p.Recurrence
	}
	if p.RecurrenceDays != nil {
		set["recurrence_days"] = p.RecurrenceDays
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}

	res, err := s.c.UpdateOne(ctx, ownerFilter(userID, reminderID), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the reminder if userID owns it.
func (s *Store) Delete(ctx context.Context, userID, reminderID string) error {
	res, err := s.c.DeleteOne(ctx, ownerFilter(userID, reminderID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
