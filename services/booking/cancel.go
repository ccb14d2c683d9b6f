package booking

import (
	"context"
	"errors"

	paymentRepo "wanderstay/database/repository/payment"
	"wanderstay/models"
	"wanderstay/services/events"

	"go.uber.org/zap"
)

// Cancel cancels a booking within the cancellable window and computes the
// time-tiered refund. When a captured payment exists and the refund is
// positive, the refund is queued for asynchronous processing; a failure to
// queue is logged and retried out of band, never rolled back.
func (s *DefaultBookingService) Cancel(ctx context.Context, ref, actingUserID, reason string) (*models.CancellationResponse, error) {
	booking, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actingUserID {
		return nil, ErrForbidden
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
		return nil, ErrInvalidBookingState
	}

	now := s.now()
	if !Cancellable(booking.CheckIn, now) {
		return nil, ErrCancellationWindowClosed
	}

	refund := RefundAmount(booking.CheckIn, now, booking.Pricing.Total)

	capturedPayment := s.capturedPayment(ctx, booking)
	refundStatus := models.RefundStatusNone
	if capturedPayment != nil && refund > 0 {
		refundStatus = models.RefundStatusPending
	}

	booking.Status = models.BookingStatusCancelled
	booking.Cancellation = &models.Cancellation{
		CancelledAt:  now.UTC(),
		CancelledBy:  actingUserID,
		Reason:       reason,
		RefundAmount: refund,
		RefundStatus: refundStatus,
	}

	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if refundStatus == models.RefundStatusPending {
		if err := s.Refunds.EnqueueRefund(ctx, capturedPayment.ID, refund, "booking cancelled: "+reason); err != nil {
			// The cancellation stands; the refund will be retried out of band.
			s.Logger.Error("failed to enqueue cancellation refund",
				zap.String("ref", booking.Ref),
				zap.String("payment", capturedPayment.ID),
				zap.Error(err),
			)
		}
	}

	if err := s.Events.Publish(ctx, events.TypeBookingCancelled, events.BookingCancelled{
		BookingRef:   booking.Ref,
		UserID:       booking.UserID,
		HotelID:      booking.HotelID,
		RefundAmount: refund,
		Currency:     booking.Pricing.Currency,
		Reason:       reason,
	}); err != nil {
		s.Logger.Warn("failed to publish booking cancelled event", zap.String("ref", booking.Ref), zap.Error(err))
	}

	s.Logger.Info("booking cancelled",
		zap.String("ref", booking.Ref),
		zap.Int64("refund", refund),
		zap.String("refundStatus", string(refundStatus)),
	)

	return &models.CancellationResponse{
		Booking:      booking,
		RefundAmount: refund,
		RefundStatus: refundStatus,
	}, nil
}

// capturedPayment returns the booking's payment when settled money needs
// refunding. A payment still in the created state is voided instead: no
// money moved, so a later gateway callback must not settle it.
func (s *DefaultBookingService) capturedPayment(ctx context.Context, booking *models.Booking) *models.Payment {
	if booking.PaymentID == "" {
		return nil
	}
	payment, err := s.Payments.GetByID(ctx, booking.PaymentID)
	if err != nil {
		if !errors.Is(err, paymentRepo.ErrNotFound) {
			s.Logger.Warn("failed to load payment for cancellation",
				zap.String("ref", booking.Ref),
				zap.String("payment", booking.PaymentID),
				zap.Error(err),
			)
		}
		return nil
	}

	if payment.Status == models.PaymentStatusCreated {
		voided, err := s.Payments.MarkCancelled(ctx, payment.ID)
		if err != nil {
			s.Logger.Warn("failed to void unsettled payment",
				zap.String("ref", booking.Ref),
				zap.String("payment", payment.ID),
				zap.Error(err),
			)
			return nil
		}
		if voided {
			return nil
		}
		// A concurrent capture won the conditional update; reload and
		// fall through to the refund path.
		payment, err = s.Payments.GetByID(ctx, payment.ID)
		if err != nil {
			return nil
		}
	}

	if !payment.Status.Refundable() {
		return nil
	}
	return payment
}
