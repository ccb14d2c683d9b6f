package booking

import (
	"context"

	"wanderstay/models"
)

// Update applies an administrative field patch. Owning user, hotel,
// pricing and lifecycle status cannot be patched; terminal bookings are
// immutable except for refund-status bookkeeping.
func (s *DefaultBookingService) Update(ctx context.Context, ref string, patch models.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, ErrInvalidBookingState
	}

	if patch.RoomType != nil {
		booking.RoomType = *patch.RoomType
	}
	if patch.Adults != nil {
		booking.Adults = *patch.Adults
	}
	if patch.Children != nil {
		booking.Children = *patch.Children
	}
	if patch.Guest != nil {
		booking.Guest = models.GuestContact(*patch.Guest)
	}
	if patch.SpecialRequests != nil {
		booking.SpecialRequests = *patch.SpecialRequests
	}

	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}
