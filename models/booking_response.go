package models

// BookingResponse is a booking enriched with hotel and guest display fields.
type BookingResponse struct {
	Booking
	HotelName string `json:"hotelName"`
	HotelCity string `json:"hotelCity"`
}

// OrderResponse is what a client needs to complete payment on their side.
type OrderResponse struct {
	PaymentID      string `json:"paymentId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	GatewayKeyID   string `json:"gatewayKeyId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// CancellationResponse summarises a completed cancellation.
type CancellationResponse struct {
	Booking      *Booking     `json:"booking"`
	RefundAmount int64        `json:"refundAmount"`
	RefundStatus RefundStatus `json:"refundStatus"`
}
