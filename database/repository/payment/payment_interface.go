package paymentRepo

import (
	"context"

	"wanderstay/models"
)

// PaymentRepository defines the persistence contract for payments.
// Payments are never deleted.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	GetActiveByBooking(ctx context.Context, bookingRef string) (*models.Payment, error)
	// MarkCaptured conditionally captures a created/authorized payment.
	// Returns false without error when the payment was already captured,
	// which is the replay-protection path.
	MarkCaptured(ctx context.Context, id, gatewayPaymentID, signature, method string) (bool, error)
	// MarkCancelled conditionally voids a payment that is still in the
	// created state. Returns false without error when the payment moved on
	// (typically a concurrent capture), letting the caller fall back to
	// the refund path.
	MarkCancelled(ctx context.Context, id string) (bool, error)
	MarkFailed(ctx context.Context, id, reason string) error
	AppendRefund(ctx context.Context, id string, refund models.RefundRecord, newStatus models.PaymentStatus) error
}
