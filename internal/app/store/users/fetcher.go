package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/dailyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher implements auth.UserFetcher. The gate calls it once per
// protected request, so the full record is always fresh.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchByEmail returns (nil, nil) when no user has this email, so the gate
// can tell "unknown subject" (401) from a store failure (500).
func (f *Fetcher) FetchByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := f.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
