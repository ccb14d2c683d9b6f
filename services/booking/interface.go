package booking

import (
	"context"

	"wanderstay/models"
)

// BookingService is the public surface of the booking lifecycle controller.
type BookingService interface {
	Create(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.BookingResponse, error)
	Get(ctx context.Context, actingUserID, role, ref string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error)
	Cancel(ctx context.Context, ref, actingUserID, reason string) (*models.CancellationResponse, error)
	Update(ctx context.Context, ref string, patch models.UpdateBookingRequest) (*models.Booking, error)
	MarkCompleted(ctx context.Context, ref string) (*models.Booking, error)
	MarkNoShow(ctx context.Context, ref string) (*models.Booking, error)
}

// RefundQueue enqueues a cancellation refund for asynchronous processing.
// Enqueue failures are logged by the caller and never roll back the
// cancellation itself.
type RefundQueue interface {
	EnqueueRefund(ctx context.Context, paymentID string, amount int64, reason string) error
}
