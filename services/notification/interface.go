package notification

import (
	"context"

	"wanderstay/services/events"
)

// Notifier delivers booking notifications. Delivery failures are logged
// and never propagate to the operations that produced the events.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, evt events.BookingConfirmed) error
	NotifyBookingCancelled(ctx context.Context, evt events.BookingCancelled) error
}
