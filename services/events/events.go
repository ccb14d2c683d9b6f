package events

import "time"

// Event types emitted by the booking engine.
const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
)

// Envelope is the wire shape of a domain event.
type Envelope struct {
	ID     string      `json:"id"`
	Source string      `json:"source"`
	Type   string      `json:"type"`
	Time   time.Time   `json:"time"`
	Data   interface{} `json:"data"`
}

// BookingConfirmed is emitted after a successful payment settlement.
type BookingConfirmed struct {
	BookingRef string `json:"bookingRef"`
	UserID     string `json:"userId"`
	HotelID    string `json:"hotelId"`
	PaymentID  string `json:"paymentId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}

// BookingCancelled is emitted after a cancellation is persisted.
type BookingCancelled struct {
	BookingRef   string `json:"bookingRef"`
	UserID       string `json:"userId"`
	HotelID      string `json:"hotelId"`
	RefundAmount int64  `json:"refundAmount"`
	Currency     string `json:"currency"`
	Reason       string `json:"reason"`
}
