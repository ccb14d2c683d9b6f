package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wanderstay/database"
	"wanderstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no booking matches the given reference.
var ErrNotFound = errors.New("booking not found")

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(database.Name()).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "ref", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "hotel_id", Value: 1}, {Key: "check_in", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByRef retrieves a booking by its reference.
func (r *MongoBookingRepo) GetByRef(ctx context.Context, ref string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"ref": ref}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", ref, err)
	}
	return &booking, nil
}

// GetByUser returns all bookings owned by a user, newest first.
func (r *MongoBookingRepo) GetByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

// GetByHotel returns all bookings for a hotel ordered by check-in date.
func (r *MongoBookingRepo) GetByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"hotel_id": hotelID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for hotel %s: %w", hotelID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for hotel %s: %w", hotelID, err)
	}
	return bookings, nil
}

// Update replaces the mutable fields of an existing booking document.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now().UTC()
	filter := bson.M{"ref": booking.Ref}
	update := bson.M{"$set": booking}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.Ref, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPaymentRef links a payment record to the booking.
func (r *MongoBookingRepo) SetPaymentRef(ctx context.Context, ref, paymentID string) error {
	return r.setFields(ctx, ref, bson.M{"payment_id": paymentID})
}

// MarkConfirmed conditionally transitions a pending booking to
// confirmed/paid in one write. The status filter makes the transition a
// compare-and-set: a booking cancelled while its payment was in flight
// stays cancelled and the caller sees false.
func (r *MongoBookingRepo) MarkConfirmed(ctx context.Context, ref string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"ref": ref, "status": models.BookingStatusPending}
	update := bson.M{"$set": bson.M{
		"status":         models.BookingStatusConfirmed,
		"payment_status": models.BookingPaymentPaid,
		"updated_at":     time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error confirming booking %s: %w", ref, err)
	}
	return res.ModifiedCount == 1, nil
}

// SetPaymentStatus updates only the payment sub-state.
func (r *MongoBookingRepo) SetPaymentStatus(ctx context.Context, ref string, status models.BookingPaymentStatus) error {
	return r.setFields(ctx, ref, bson.M{"payment_status": status})
}

// SetRefundStatus updates the refund bookkeeping on the cancellation record.
func (r *MongoBookingRepo) SetRefundStatus(ctx context.Context, ref string, status models.RefundStatus) error {
	return r.setFields(ctx, ref, bson.M{"cancellation.refund_status": status})
}

func (r *MongoBookingRepo) setFields(ctx context.Context, ref string, fields bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	fields["updated_at"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"ref": ref}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", ref, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
