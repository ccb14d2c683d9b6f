package paymentRepo

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

// ErrNotFound is returned when no payment matches the lookup.
var ErrNotFound = errors.New("payment not found")

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	coll := database.MongoClient.Database(database.Name()).Collection("payments")
	repo := &MongoPaymentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create payment indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "gateway_order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_ref", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment document.
func (r *MongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, payment)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its identifier.
func (r *MongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByGatewayOrderID retrieves a payment by the gateway's order identifier.
func (r *MongoPaymentRepo) GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{"gateway_order_id": orderID})
}

// GetActiveByBooking returns the booking's live payment attempt, if any.
// Failed and cancelled attempts do not block issuing a fresh order.
func (r *MongoPaymentRepo) GetActiveByBooking(ctx context.Context, bookingRef string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{
		"booking_ref": bookingRef,
		"status": bson.M{"$nin": bson.A{
			models.PaymentStatusFailed,
			models.PaymentStatusCancelled,
		}},
	})
}

func (r *MongoPaymentRepo) findOne(ctx context.Context, filter bson.M) (*models.Payment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := r.coll.FindOne(ctx, filter).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching payment: %w", err)
	}
	return &payment, nil
}

// MarkCaptured performs a conditional capture so that concurrent or replayed
// callbacks for the same order produce exactly one captured transition.
func (r *MongoPaymentRepo) MarkCaptured(ctx context.Context, id, gatewayPaymentID, signature, method string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": bson.A{models.PaymentStatusCreated, models.PaymentStatusAuthorized}},
	}
	update := bson.M{"$set": bson.M{
		"status":             models.PaymentStatusCaptured,
		"gateway_payment_id": gatewayPaymentID,
		"gateway_signature":  signature,
		"method":             method,
		"updated_at":         time.Now().UTC(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error capturing payment %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

// MarkCancelled voids a still-unsettled payment. The status filter makes
// the void race-safe against a concurrent capture: exactly one of the two
// conditional updates wins.
func (r *MongoPaymentRepo) MarkCancelled(ctx context.Context, id string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.PaymentStatusCreated}
	update := bson.M{"$set": bson.M{
		"status":     models.PaymentStatusCancelled,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error cancelling payment %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

// MarkFailed records a terminal verification failure.
func (r *MongoPaymentRepo) MarkFailed(ctx context.Context, id, reason string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":         models.PaymentStatusFailed,
		"failure_reason": reason,
		"updated_at":     time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error failing payment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendRefund pushes a refund record and moves the payment to newStatus.
func (r *MongoPaymentRepo) AppendRefund(ctx context.Context, id string, refund models.RefundRecord, newStatus models.PaymentStatus) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"refunds": refund},
		"$set": bson.M{
			"status":     newStatus,
			"updated_at": time.Now().UTC(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error appending refund to payment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
