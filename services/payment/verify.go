package payment

import (
	"context"
	"errors"

	paymentRepo "wanderstay/database/repository/payment"
	"wanderstay/models"
	"wanderstay/services/events"

	"go.uber.org/zap"
)

// Verify validates a gateway settlement callback and applies the
// settlement outcome: payment captured, booking confirmed/paid. The
// operation is keyed by gateway order id and re-runnable: a replayed
// callback after full settlement is a no-op returning
// ErrPaymentAlreadyProcessed, and a crash between the payment and booking
// writes is healed on the next replay.
func (s *DefaultPaymentService) Verify(ctx context.Context, req models.VerifyPaymentRequest) (*models.Payment, error) {
	payment, err := s.Payments.GetByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	switch payment.Status {
	case models.PaymentStatusCaptured, models.PaymentStatusRefunded:
		// Replay protection: finish the booking write if a previous run
		// died between the two documents, then report the replay.
		s.healBookingState(ctx, payment)
		return nil, ErrPaymentAlreadyProcessed
	case models.PaymentStatusFailed, models.PaymentStatusCancelled:
		return nil, ErrPaymentVerificationFailed
	}

	if !signatureMatches(req.GatewayOrderID, req.GatewayPaymentID, s.GatewaySecret, req.GatewaySignature) {
		// Local, final failure: the booking stays pending and the user
		// must restart the payment flow with a fresh order.
		if err := s.Payments.MarkFailed(ctx, payment.ID, "signature mismatch"); err != nil {
			s.Logger.Error("failed to record verification failure",
				zap.String("payment", payment.ID),
				zap.Error(err),
			)
		}
		s.Logger.Warn("payment verification failed",
			zap.String("payment", payment.ID),
			zap.String("order", req.GatewayOrderID),
		)
		return nil, ErrPaymentVerificationFailed
	}

	method := req.Method
	if method == "" {
		method = payment.Method
	}
	captured, err := s.Payments.MarkCaptured(ctx, payment.ID, req.GatewayPaymentID, req.GatewaySignature, method)
	if err != nil {
		return nil, err
	}
	if !captured {
		// A concurrent callback won the conditional update.
		s.healBookingState(ctx, payment)
		return nil, ErrPaymentAlreadyProcessed
	}

	confirmed, err := s.Bookings.MarkConfirmed(ctx, payment.BookingRef)
	if err != nil {
		// Payment is captured; the next callback replay completes this
		// write. Surface the error so the gateway retries.
		s.Logger.Error("payment captured but booking confirmation failed",
			zap.String("payment", payment.ID),
			zap.String("ref", payment.BookingRef),
			zap.Error(err),
		)
		return nil, err
	}
	if !confirmed {
		// The booking left the pending state while the payment was in
		// flight. The capture stands but money collected for a dead
		// booking goes straight back.
		s.refundDeadBooking(ctx, payment)
		return s.Payments.GetByID(ctx, payment.ID)
	}

	hotelID := ""
	if booking, err := s.Bookings.GetByRef(ctx, payment.BookingRef); err == nil {
		hotelID = booking.HotelID
	} else {
		s.Logger.Warn("could not load booking for confirmation event",
			zap.String("ref", payment.BookingRef),
			zap.Error(err),
		)
	}

	if err := s.Events.Publish(ctx, events.TypeBookingConfirmed, events.BookingConfirmed{
		BookingRef: payment.BookingRef,
		UserID:     payment.UserID,
		HotelID:    hotelID,
		PaymentID:  payment.ID,
		Amount:     payment.Amount,
		Currency:   payment.Currency,
	}); err != nil {
		// Best-effort boundary: confirmation stands regardless.
		s.Logger.Warn("failed to publish booking confirmed event",
			zap.String("ref", payment.BookingRef),
			zap.Error(err),
		)
	}

	s.Logger.Info("payment captured",
		zap.String("payment", payment.ID),
		zap.String("ref", payment.BookingRef),
		zap.String("order", req.GatewayOrderID),
	)

	return s.Payments.GetByID(ctx, payment.ID)
}

// healBookingState finishes the booking-side write of a settlement whose
// payment-side write already committed.
func (s *DefaultPaymentService) healBookingState(ctx context.Context, payment *models.Payment) {
	booking, err := s.Bookings.GetByRef(ctx, payment.BookingRef)
	if err != nil {
		s.Logger.Warn("could not load booking while healing settlement",
			zap.String("ref", payment.BookingRef),
			zap.Error(err),
		)
		return
	}
	if booking.Status != models.BookingStatusPending {
		return
	}
	if _, err := s.Bookings.MarkConfirmed(ctx, payment.BookingRef); err != nil {
		s.Logger.Error("failed to heal booking settlement state",
			zap.String("ref", payment.BookingRef),
			zap.Error(err),
		)
	}
}

// refundDeadBooking queues the full captured amount back when a
// settlement landed on a booking that is no longer pending. Only a
// cancelled booking triggers the refund; a booking confirmed by a
// concurrent replay needs nothing.
func (s *DefaultPaymentService) refundDeadBooking(ctx context.Context, payment *models.Payment) {
	booking, err := s.Bookings.GetByRef(ctx, payment.BookingRef)
	if err != nil {
		s.Logger.Error("could not load booking after capture for dead booking",
			zap.String("ref", payment.BookingRef),
			zap.Error(err),
		)
		return
	}
	if booking.Status != models.BookingStatusCancelled {
		return
	}

	s.Logger.Warn("payment captured for a cancelled booking, refunding",
		zap.String("payment", payment.ID),
		zap.String("ref", payment.BookingRef),
		zap.Int64("amount", payment.Amount),
	)
	if s.Refunds == nil {
		s.Logger.Error("no refund queue configured, refund must be issued manually",
			zap.String("payment", payment.ID),
		)
		return
	}
	if err := s.Refunds.EnqueueRefund(ctx, payment.ID, payment.Amount, "booking cancelled before settlement"); err != nil {
		s.Logger.Error("failed to enqueue refund for cancelled booking",
			zap.String("payment", payment.ID),
			zap.Error(err),
		)
	}
}
