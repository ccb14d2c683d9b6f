package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wanderstay/database"
	"wanderstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no user matches the given id.
var ErrNotFound = errors.New("user not found")

// UserRepository is a read-only view over user identities. Credential and
// profile management live upstream of the booking engine.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new read-only user repository.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database(database.Name()).Collection("users")
	return &MongoUserRepo{coll: coll}
}

// GetByID retrieves a user by their identifier.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user %s: %w", id, err)
	}
	return &user, nil
}
