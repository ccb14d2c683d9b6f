package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// PaymentStatus is the gateway-side state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusCreated    PaymentStatus = "created"
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusCaptured   PaymentStatus = "captured"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// Refundable reports whether money can still be returned from this state.
func (s PaymentStatus) Refundable() bool {
	return s == PaymentStatusAuthorized || s == PaymentStatusCaptured
}

// RefundRecord is one executed (or attempted) refund against a payment.
type RefundRecord struct {
	ID          string       `bson:"id" json:"id"`
	Amount      int64        `bson:"amount" json:"amount"`
	Reason      string       `bson:"reason" json:"reason"`
	Status      RefundStatus `bson:"status" json:"status"`
	ProcessedAt time.Time    `bson:"processed_at" json:"processedAt"`
}

// Payment represents one attempt to collect money for a booking.
type Payment struct {
	ID               string         `bson:"id" json:"id"`
	BookingRef       string         `bson:"booking_ref" json:"bookingRef"`
	UserID           string         `bson:"user_id" json:"userId"`
	Amount           int64          `bson:"amount" json:"amount"` // minor currency units
	Currency         string         `bson:"currency" json:"currency"`
	Method           string         `bson:"method" json:"method"`
	GatewayOrderID   string         `bson:"gateway_order_id" json:"gatewayOrderId"`
	GatewayPaymentID string         `bson:"gateway_payment_id,omitempty" json:"gatewayPaymentId,omitempty"`
	GatewaySignature string         `bson:"gateway_signature,omitempty" json:"-"`
	Status           PaymentStatus  `bson:"status" json:"status"`
	FailureReason    string         `bson:"failure_reason,omitempty" json:"failureReason,omitempty"`
	Refunds          []RefundRecord `bson:"refunds,omitempty" json:"refunds,omitempty"`
	GatewayResponse  bson.M         `bson:"gateway_response,omitempty" json:"-"`
	CreatedAt        time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `bson:"updated_at" json:"updatedAt"`
}

// RefundedAmount sums all processed refunds.
func (p *Payment) RefundedAmount() int64 {
	var sum int64
	for _, r := range p.Refunds {
		if r.Status == RefundStatusProcessed {
			sum += r.Amount
		}
	}
	return sum
}

// RemainingRefundable returns how much money can still be refunded.
func (p *Payment) RemainingRefundable() int64 {
	return p.Amount - p.RefundedAmount()
}
