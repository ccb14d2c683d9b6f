package booking

import "fmt"

// Error is a domain error with a stable machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the stable error kind.
func (e *Error) ErrorCode() string {
	return e.Code
}

var (
	ErrInvalidDate              = &Error{Code: "InvalidDateError", Message: "check-in must be in the future and check-out after check-in"}
	ErrAdvanceLimitExceeded     = &Error{Code: "AdvanceLimitExceeded", Message: "check-in is too far in the future"}
	ErrAdvanceLimitTooSoon      = &Error{Code: "AdvanceLimitTooSoon", Message: "check-in is too close to now"}
	ErrHotelNotFound            = &Error{Code: "HotelNotFound", Message: "referenced hotel does not exist"}
	ErrHotelUnavailable         = &Error{Code: "HotelUnavailable", Message: "referenced hotel is not accepting bookings"}
	ErrBookingNotFound          = &Error{Code: "BookingNotFound", Message: "booking does not exist"}
	ErrForbidden                = &Error{Code: "Forbidden", Message: "acting user may not access this booking"}
	ErrInvalidBookingState      = &Error{Code: "InvalidBookingState", Message: "operation not allowed in the booking's current state"}
	ErrCancellationWindowClosed = &Error{Code: "CancellationWindowClosed", Message: "cancellation window has closed"}
	ErrRoomsUnavailable         = &Error{Code: "RoomsUnavailable", Message: "requested room-nights are held by another booking"}
)
