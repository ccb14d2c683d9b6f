package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"wanderstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settlePayment drives a booking through order creation and a verified
// callback, returning the captured payment id.
func settlePayment(t *testing.T, env *testEnv, ref, userID string) string {
	t.Helper()
	order := issueOrder(t, env, ref, userID)
	_, err := env.svc.Verify(context.Background(), validCallback(env, order.GatewayOrderID))
	require.NoError(t, err)
	return order.PaymentID
}

func TestRefundFullAmount(t *testing.T) {
	env := newTestService(t)
	paymentID := settlePayment(t, env, "WS-1", "u1")

	payment, err := env.svc.Refund(context.Background(), paymentID, 0, "guest cancelled")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
	assert.Equal(t, int64(241000), payment.RefundedAmount())
	assert.Equal(t, int64(0), payment.RemainingRefundable())
	assert.Equal(t, int64(241000), env.gateway.lastRefunded)

	booking, err := env.bookings.GetByRef(context.Background(), "WS-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaymentRefunded, booking.PaymentStatus)
}

func TestRefundPartialThenFull(t *testing.T) {
	env := newTestService(t)
	paymentID := settlePayment(t, env, "WS-1", "u1")

	payment, err := env.svc.Refund(context.Background(), paymentID, 120500, "half refund tier")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCaptured, payment.Status)
	assert.Equal(t, int64(120500), payment.RefundedAmount())
	assert.Equal(t, int64(120500), payment.RemainingRefundable())

	booking, err := env.bookings.GetByRef(context.Background(), "WS-1")
	require.NoError(t, err)
	assert.NotEqual(t, models.BookingPaymentRefunded, booking.PaymentStatus)

	// Draining the remainder flips the payment to refunded.
	payment, err = env.svc.Refund(context.Background(), paymentID, 0, "goodwill")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
	assert.Len(t, payment.Refunds, 2)

	booking, err = env.bookings.GetByRef(context.Background(), "WS-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaymentRefunded, booking.PaymentStatus)
}

func TestRefundNeverExceedsPaymentAmount(t *testing.T) {
	env := newTestService(t)
	paymentID := settlePayment(t, env, "WS-1", "u1")

	_, err := env.svc.Refund(context.Background(), paymentID, 241001, "too much")
	assert.ErrorIs(t, err, ErrInvalidRefundAmount)
	assert.Equal(t, 0, env.gateway.refundCalls)

	_, err = env.svc.Refund(context.Background(), paymentID, 120500, "half")
	require.NoError(t, err)

	// Remaining is now 120500; anything above it is rejected.
	_, err = env.svc.Refund(context.Background(), paymentID, 120501, "over remaining")
	assert.ErrorIs(t, err, ErrInvalidRefundAmount)
	assert.Equal(t, 1, env.gateway.refundCalls)
}

func TestRefundFullyRefundedPayment(t *testing.T) {
	env := newTestService(t)
	paymentID := settlePayment(t, env, "WS-1", "u1")

	_, err := env.svc.Refund(context.Background(), paymentID, 0, "full")
	require.NoError(t, err)

	_, err = env.svc.Refund(context.Background(), paymentID, 1, "again")
	assert.ErrorIs(t, err, ErrPaymentNotRefundable)
}

func TestRefundRequiresRefundableState(t *testing.T) {
	env := newTestService(t)
	order := issueOrder(t, env, "WS-1", "u1")

	// Still in created state: money was never collected.
	_, err := env.svc.Refund(context.Background(), order.PaymentID, 0, "nothing captured")
	assert.ErrorIs(t, err, ErrPaymentNotRefundable)
	assert.Equal(t, 0, env.gateway.refundCalls)
}

func TestRefundUnknownPayment(t *testing.T) {
	env := newTestService(t)
	_, err := env.svc.Refund(context.Background(), "missing", 0, "nope")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestRefundGatewayFailureLeavesPaymentUntouched(t *testing.T) {
	env := newTestService(t)
	paymentID := settlePayment(t, env, "WS-1", "u1")
	env.gateway.refundErr = errors.New("gateway unreachable")

	_, err := env.svc.Refund(context.Background(), paymentID, 0, "full")
	assert.ErrorIs(t, err, ErrPaymentGatewayError)

	payment, err := env.payments.GetByID(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCaptured, payment.Status)
	assert.Empty(t, payment.Refunds)
}

func TestRefundMarksCancellationProcessed(t *testing.T) {
	env := newTestService(t)
	paymentID := settlePayment(t, env, "WS-1", "u1")

	booking, err := env.bookings.GetByRef(context.Background(), "WS-1")
	require.NoError(t, err)
	booking.Status = models.BookingStatusCancelled
	booking.Cancellation = &models.Cancellation{
		CancelledAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		CancelledBy:  "u1",
		Reason:       "change of plans",
		RefundAmount: 241000,
		RefundStatus: models.RefundStatusPending,
	}
	require.NoError(t, env.bookings.Update(context.Background(), booking))

	_, err = env.svc.Refund(context.Background(), paymentID, 241000, "cancellation")
	require.NoError(t, err)

	booking, err = env.bookings.GetByRef(context.Background(), "WS-1")
	require.NoError(t, err)
	require.NotNil(t, booking.Cancellation)
	assert.Equal(t, models.RefundStatusProcessed, booking.Cancellation.RefundStatus)
}
