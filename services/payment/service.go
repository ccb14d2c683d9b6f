package payment

import (
	"context"
	"errors"
	"time"

	bookingRepo "wanderstay/database/repository/booking"
	paymentRepo "wanderstay/database/repository/payment"
	"wanderstay/models"
	"wanderstay/services/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Bookings bookingRepo.BookingRepository
	Payments paymentRepo.PaymentRepository
	Gateway  Gateway
	Events   events.Publisher
	Refunds  RefundQueue
	Logger   *zap.Logger

	// GatewayKeyID is the public key id returned to clients so they can
	// complete the payment client-side.
	GatewayKeyID string
	// GatewaySecret signs settlement callbacks.
	GatewaySecret string

	Now func() time.Time
}

func (s *DefaultPaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateOrder creates a payment intent with the gateway for a pending
// booking and persists the linked payment record. On gateway failure
// nothing is persisted and the booking remains payment-less.
func (s *DefaultPaymentService) CreateOrder(ctx context.Context, actingUserID string, req models.CreateOrderRequest) (*models.OrderResponse, error) {
	booking, err := s.Bookings.GetByRef(ctx, req.BookingRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != actingUserID {
		return nil, ErrForbidden
	}
	if booking.Status != models.BookingStatusPending || booking.PaymentStatus != models.BookingPaymentPending {
		return nil, ErrInvalidBookingState
	}

	if _, err := s.Payments.GetActiveByBooking(ctx, booking.Ref); err == nil {
		return nil, ErrPaymentAlreadyExists
	} else if !errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, err
	}

	order, err := s.createOrderWithRetry(ctx, booking)
	if err != nil {
		s.Logger.Error("gateway order creation failed",
			zap.String("ref", booking.Ref),
			zap.Error(err),
		)
		return nil, ErrPaymentGatewayError
	}

	now := s.now().UTC()
	payment := &models.Payment{
		ID:             uuid.New().String(),
		BookingRef:     booking.Ref,
		UserID:         booking.UserID,
		Amount:         booking.Pricing.Total,
		Currency:       booking.Pricing.Currency,
		Method:         req.Method,
		GatewayOrderID: order.ID,
		Status:         models.PaymentStatusCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.Bookings.SetPaymentRef(ctx, booking.Ref, payment.ID); err != nil {
		return nil, err
	}

	s.Logger.Info("payment order created",
		zap.String("ref", booking.Ref),
		zap.String("payment", payment.ID),
		zap.String("order", order.ID),
		zap.Int64("amount", payment.Amount),
	)

	return &models.OrderResponse{
		PaymentID:      payment.ID,
		GatewayOrderID: order.ID,
		GatewayKeyID:   s.GatewayKeyID,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
	}, nil
}

// createOrderWithRetry calls the gateway with a bounded timeout and a
// single retry. Order creation is the only gateway call that may be
// retried; verification and refunds never are.
func (s *DefaultPaymentService) createOrderWithRetry(ctx context.Context, booking *models.Booking) (*Order, error) {
	notes := map[string]string{
		"booking_ref": booking.Ref,
		"user_id":     booking.UserID,
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		order, err := s.Gateway.CreateOrder(callCtx, booking.Pricing.Total, booking.Pricing.Currency, booking.Ref, notes)
		cancel()
		if err == nil {
			return order, nil
		}
		lastErr = err
		s.Logger.Warn("gateway order attempt failed",
			zap.String("ref", booking.Ref),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return nil, lastErr
}
