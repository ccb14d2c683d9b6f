package bookingRepo

import (
	"context"

	"wanderstay/models"
)

// BookingRepository defines the persistence contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByRef(ctx context.Context, ref string) (*models.Booking, error)
	GetByUser(ctx context.Context, userID string) ([]models.Booking, error)
	GetByHotel(ctx context.Context, hotelID string) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	SetPaymentRef(ctx context.Context, ref, paymentID string) error
	// MarkConfirmed conditionally flips a pending booking to confirmed and
	// its payment status to paid. Returns false without error when the
	// booking is no longer pending, so a settlement can never resurrect a
	// cancelled booking.
	MarkConfirmed(ctx context.Context, ref string) (bool, error)
	SetPaymentStatus(ctx context.Context, ref string, status models.BookingPaymentStatus) error
	SetRefundStatus(ctx context.Context, ref string, status models.RefundStatus) error
}
