package models

import "time"

// GuestContactInput is the guest contact block of a reservation request.
type GuestContactInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// CreateBookingRequest is the validated payload for creating a booking.
type CreateBookingRequest struct {
	HotelID         string            `json:"hotelId" binding:"required"`
	CheckIn         time.Time         `json:"checkIn" binding:"required"`
	CheckOut        time.Time         `json:"checkOut" binding:"required"`
	Adults          int               `json:"adults" binding:"required,min=1"`
	Children        int               `json:"children" binding:"min=0"`
	Rooms           int               `json:"rooms" binding:"required,min=1,max=10"`
	RoomType        string            `json:"roomType" binding:"required"`
	Guest           GuestContactInput `json:"guest" binding:"required"`
	SpecialRequests string            `json:"specialRequests"`
}

// CancelBookingRequest carries the reason for a cancellation.
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UpdateBookingRequest is the administrative field patch. Owning user,
// hotel, pricing and lifecycle status are deliberately absent.
type UpdateBookingRequest struct {
	RoomType        *string            `json:"roomType"`
	Adults          *int               `json:"adults" binding:"omitempty,min=1"`
	Children        *int               `json:"children" binding:"omitempty,min=0"`
	Guest           *GuestContactInput `json:"guest"`
	SpecialRequests *string            `json:"specialRequests"`
}

// CreateOrderRequest asks for a payment order on an existing booking.
type CreateOrderRequest struct {
	BookingRef string `json:"bookingRef" binding:"required"`
	Method     string `json:"method" binding:"required,oneof=upi card netbanking wallet"`
}

// VerifyPaymentRequest is the gateway callback payload.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
	GatewaySignature string `json:"gatewaySignature" binding:"required"`
	Method           string `json:"method"`
}

// RefundRequest is the admin-only refund payload. Amount zero means
// "refund the full remaining refundable amount".
type RefundRequest struct {
	Amount int64  `json:"amount" binding:"omitempty,min=1"`
	Reason string `json:"reason" binding:"required"`
}
