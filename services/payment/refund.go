package payment

import (
	"context"
	"errors"

	paymentRepo "wanderstay/database/repository/payment"
	"wanderstay/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Refund executes a refund against a captured or authorized payment.
// The requested amount defaults to the full remaining refundable balance
// and must never push the cumulative refunded amount past the payment
// amount. Refund calls are never retried in-process; the async worker
// re-enters through this same guarded path.
func (s *DefaultPaymentService) Refund(ctx context.Context, paymentID string, amount int64, reason string) (*models.Payment, error) {
	payment, err := s.Payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if !payment.Status.Refundable() {
		return nil, ErrPaymentNotRefundable
	}

	remaining := payment.RemainingRefundable()
	if remaining <= 0 {
		return nil, ErrInvalidRefundAmount
	}
	if amount == 0 {
		amount = remaining
	}
	if amount < 0 || amount > remaining {
		return nil, ErrInvalidRefundAmount
	}

	refundID, err := s.Gateway.Refund(ctx, payment.GatewayPaymentID, amount, map[string]string{
		"booking_ref": payment.BookingRef,
		"reason":      reason,
	})
	if err != nil {
		s.Logger.Error("gateway refund failed",
			zap.String("payment", payment.ID),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return nil, ErrPaymentGatewayError
	}

	record := models.RefundRecord{
		ID:          refundID,
		Amount:      amount,
		Reason:      reason,
		Status:      models.RefundStatusProcessed,
		ProcessedAt: s.now().UTC(),
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	newStatus := payment.Status
	fullyRefunded := payment.RefundedAmount()+amount == payment.Amount
	if fullyRefunded {
		newStatus = models.PaymentStatusRefunded
	}
	if err := s.Payments.AppendRefund(ctx, payment.ID, record, newStatus); err != nil {
		return nil, err
	}

	if fullyRefunded {
		if err := s.Bookings.SetPaymentStatus(ctx, payment.BookingRef, models.BookingPaymentRefunded); err != nil {
			s.Logger.Warn("failed to set booking payment status after refund",
				zap.String("ref", payment.BookingRef),
				zap.Error(err),
			)
		}
	}
	s.markCancellationRefunded(ctx, payment.BookingRef)

	s.Logger.Info("refund processed",
		zap.String("payment", payment.ID),
		zap.String("refund", record.ID),
		zap.Int64("amount", amount),
		zap.Bool("full", fullyRefunded),
	)

	return s.Payments.GetByID(ctx, payment.ID)
}

// markCancellationRefunded flips the cancellation bookkeeping to
// processed when the booking was cancelled with a pending refund.
func (s *DefaultPaymentService) markCancellationRefunded(ctx context.Context, bookingRef string) {
	booking, err := s.Bookings.GetByRef(ctx, bookingRef)
	if err != nil {
		s.Logger.Warn("could not load booking after refund",
			zap.String("ref", bookingRef),
			zap.Error(err),
		)
		return
	}
	if booking.Cancellation == nil || booking.Cancellation.RefundStatus != models.RefundStatusPending {
		return
	}
	if err := s.Bookings.SetRefundStatus(ctx, bookingRef, models.RefundStatusProcessed); err != nil {
		s.Logger.Warn("failed to update cancellation refund status",
			zap.String("ref", bookingRef),
			zap.Error(err),
		)
	}
}
