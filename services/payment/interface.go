package payment

import (
	"context"

	"wanderstay/models"
)

// PaymentService issues payment orders, verifies gateway callbacks and
// executes refunds.
type PaymentService interface {
	CreateOrder(ctx context.Context, actingUserID string, req models.CreateOrderRequest) (*models.OrderResponse, error)
	// Verify settles the payment identified by its gateway order id. It
	// is safe to call more than once for the same order: the second call
	// is a no-op returning ErrPaymentAlreadyProcessed.
	Verify(ctx context.Context, req models.VerifyPaymentRequest) (*models.Payment, error)
	// Refund executes an admin refund; amount zero means the full
	// remaining refundable balance.
	Refund(ctx context.Context, paymentID string, amount int64, reason string) (*models.Payment, error)
}

// RefundQueue enqueues a refund for asynchronous processing. Used when a
// settlement lands on a booking that was cancelled while the payment was
// in flight: the money is collected and must go straight back.
type RefundQueue interface {
	EnqueueRefund(ctx context.Context, paymentID string, amount int64, reason string) error
}
