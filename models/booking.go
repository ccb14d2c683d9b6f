package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Terminal reports whether no further lifecycle transitions are allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted || s == BookingStatusNoShow
}

// BookingPaymentStatus is the payment sub-state tracked on the booking,
// independent of the lifecycle status.
type BookingPaymentStatus string

const (
	BookingPaymentPending  BookingPaymentStatus = "pending"
	BookingPaymentPaid     BookingPaymentStatus = "paid"
	BookingPaymentRefunded BookingPaymentStatus = "refunded"
	BookingPaymentFailed   BookingPaymentStatus = "failed"
)

// RefundStatus tracks refund bookkeeping on a cancellation record.
type RefundStatus string

const (
	RefundStatusNone      RefundStatus = "none"
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusProcessed RefundStatus = "processed"
)

// GuestContact holds the primary guest's contact details.
type GuestContact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Pricing is the priced breakdown of a booking in minor currency units.
// Total = Base + Taxes + Fees - Discount.
type Pricing struct {
	Base     int64  `bson:"base" json:"base"`
	Taxes    int64  `bson:"taxes" json:"taxes"`
	Fees     int64  `bson:"fees" json:"fees"`
	Discount int64  `bson:"discount" json:"discount"`
	Total    int64  `bson:"total" json:"total"`
	Currency string `bson:"currency" json:"currency"`
}

// Cancellation records how and when a booking was cancelled.
// Present if and only if the booking status is cancelled.
type Cancellation struct {
	CancelledAt  time.Time    `bson:"cancelled_at" json:"cancelledAt"`
	CancelledBy  string       `bson:"cancelled_by" json:"cancelledBy"`
	Reason       string       `bson:"reason" json:"reason"`
	RefundAmount int64        `bson:"refund_amount" json:"refundAmount"`
	RefundStatus RefundStatus `bson:"refund_status" json:"refundStatus"`
}

// Booking represents one reservation record.
type Booking struct {
	Ref             string               `bson:"ref" json:"ref"` // immutable human-readable id
	UserID          string               `bson:"user_id" json:"userId"`
	HotelID         string               `bson:"hotel_id" json:"hotelId"`
	CheckIn         time.Time            `bson:"check_in" json:"checkIn"`
	CheckOut        time.Time            `bson:"check_out" json:"checkOut"`
	Adults          int                  `bson:"adults" json:"adults"`
	Children        int                  `bson:"children" json:"children"`
	Rooms           int                  `bson:"rooms" json:"rooms"`
	RoomType        string               `bson:"room_type" json:"roomType"`
	Guest           GuestContact         `bson:"guest" json:"guest"`
	SpecialRequests string               `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`
	Pricing         Pricing              `bson:"pricing" json:"pricing"`
	Status          BookingStatus        `bson:"status" json:"status"`
	PaymentStatus   BookingPaymentStatus `bson:"payment_status" json:"paymentStatus"`
	PaymentID       string               `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	Cancellation    *Cancellation        `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	CreatedAt       time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updatedAt"`
}

// Nights returns the chargeable night count, rounding partial days up.
func (b *Booking) Nights() int64 {
	d := b.CheckOut.Sub(b.CheckIn)
	nights := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}
