package hotelRepo

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

// ErrNotFound is returned when no hotel matches the given id.
var ErrNotFound = errors.New("hotel not found")

// HotelRepository is a read-only view over the hotel catalog. The booking
// engine never mutates hotels.
type HotelRepository interface {
	GetByID(ctx context.Context, id string) (*models.Hotel, error)
}

// MongoHotelRepo implements HotelRepository using MongoDB.
type MongoHotelRepo struct {
	coll *mongo.Collection
}

// NewMongoHotelRepo creates a new read-only hotel repository.
func NewMongoHotelRepo() HotelRepository {
	coll := database.MongoClient.Database(database.Name()).Collection("hotels")
	return &MongoHotelRepo{coll: coll}
}

// GetByID retrieves a hotel by its identifier.
func (r *MongoHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var hotel models.Hotel
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching hotel %s: %w", id, err)
	}
	return &hotel, nil
}
