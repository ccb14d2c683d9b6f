package notification

import (
	"context"
	"errors"
	"fmt"

	userRepo "wanderstay/database/repository/user"
	"wanderstay/services/events"

	"go.uber.org/zap"
)

// LogNotifier resolves the recipient's contact details and logs what
// would be sent. The actual email/SMS transport lives outside this
// engine; this is the best-effort boundary.
type LogNotifier struct {
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

// NotifyBookingConfirmed announces a confirmed booking to its owner.
func (n *LogNotifier) NotifyBookingConfirmed(ctx context.Context, evt events.BookingConfirmed) error {
	contact, err := n.contact(ctx, evt.UserID)
	if err != nil {
		return err
	}
	n.Logger.Info("booking confirmation notification",
		zap.String("ref", evt.BookingRef),
		zap.String("to", contact),
		zap.String("message", fmt.Sprintf("Your booking %s is confirmed. Amount paid: %d %s.", evt.BookingRef, evt.Amount, evt.Currency)),
	)
	return nil
}

// NotifyBookingCancelled announces a cancellation and its refund.
func (n *LogNotifier) NotifyBookingCancelled(ctx context.Context, evt events.BookingCancelled) error {
	contact, err := n.contact(ctx, evt.UserID)
	if err != nil {
		return err
	}
	n.Logger.Info("booking cancellation notification",
		zap.String("ref", evt.BookingRef),
		zap.String("to", contact),
		zap.String("message", fmt.Sprintf("Your booking %s is cancelled. Refund due: %d %s.", evt.BookingRef, evt.RefundAmount, evt.Currency)),
	)
	return nil
}

func (n *LogNotifier) contact(ctx context.Context, userID string) (string, error) {
	user, err := n.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return "", fmt.Errorf("notification recipient %s not found", userID)
		}
		return "", fmt.Errorf("looking up notification recipient %s: %w", userID, err)
	}
	return user.Email, nil
}
