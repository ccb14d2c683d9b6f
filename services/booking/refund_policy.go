package booking

import "time"

// Refund tiers, measured in hours remaining until check-in. The 24 hour
// bound doubles as the cancellation gate: cancellations inside the final
// 24 hours are rejected outright rather than accepted with a zero refund.
const (
	fullRefundCutoff   = 48 * time.Hour
	halfRefundCutoff   = 24 * time.Hour
	CancellationCutoff = 24 * time.Hour
)

// Cancellable reports whether a booking with the given check-in may still
// be cancelled at time at.
func Cancellable(checkIn, at time.Time) bool {
	return checkIn.Sub(at) > CancellationCutoff
}

// RefundAmount returns the refund owed when a booking with the given
// check-in and total is cancelled at time at.
func RefundAmount(checkIn, at time.Time, total int64) int64 {
	h := checkIn.Sub(at)
	switch {
	case h > fullRefundCutoff:
		return total
	case h > halfRefundCutoff:
		return total / 2
	default:
		// Unreachable through the public cancel path, which rejects
		// inside the final 24 hours.
		return 0
	}
}
