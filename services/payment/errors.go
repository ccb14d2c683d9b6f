package payment

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
	ErrBookingNotFound           = &Error{Code: "BookingNotFound", Message: "booking does not exist"}
	ErrForbidden                 = &Error{Code: "Forbidden", Message: "acting user may not pay for this booking"}
	ErrInvalidBookingState       = &Error{Code: "InvalidBookingState", Message: "booking is not awaiting payment"}
	ErrPaymentAlreadyExists      = &Error{Code: "PaymentAlreadyExists", Message: "an active payment already exists for this booking"}
	ErrPaymentNotFound           = &Error{Code: "PaymentNotFound", Message: "payment does not exist"}
	ErrPaymentAlreadyProcessed   = &Error{Code: "PaymentAlreadyProcessed", Message: "payment was already captured"}
	ErrPaymentVerificationFailed = &Error{Code: "PaymentVerificationFailed", Message: "gateway signature did not match"}
	ErrPaymentGatewayError       = &Error{Code: "PaymentGatewayError", Message: "payment gateway call failed"}
	ErrPaymentNotRefundable      = &Error{Code: "InvalidBookingState", Message: "payment is not in a refundable state"}
	ErrInvalidRefundAmount       = &Error{Code: "InvalidRefundAmount", Message: "refund amount exceeds the refundable balance"}
)
