package payment

import (
	"context"
	"errors"

	bookingRepo "wanderstay/database/repository/booking"
	paymentRepo "wanderstay/database/repository/payment"
	"wanderstay/models"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	cp := *b
	f.bookings[b.Ref] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByRef(ctx context.Context, ref string) (*models.Booking, error) {
	b, ok := f.bookings[ref]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) GetByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	cp := *b
	f.bookings[b.Ref] = &cp
	return nil
}

func (f *fakeBookingRepo) SetPaymentRef(ctx context.Context, ref, paymentID string) error {
	b, ok := f.bookings[ref]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.PaymentID = paymentID
	return nil
}

func (f *fakeBookingRepo) MarkConfirmed(ctx context.Context, ref string) (bool, error) {
	b, ok := f.bookings[ref]
	if !ok {
		return false, nil
	}
	if b.Status != models.BookingStatusPending {
		return false, nil
	}
	b.Status = models.BookingStatusConfirmed
	b.PaymentStatus = models.BookingPaymentPaid
	return true, nil
}

func (f *fakeBookingRepo) SetPaymentStatus(ctx context.Context, ref string, status models.BookingPaymentStatus) error {
	b, ok := f.bookings[ref]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.PaymentStatus = status
	return nil
}

func (f *fakeBookingRepo) SetRefundStatus(ctx context.Context, ref string, status models.RefundStatus) error {
	b, ok := f.bookings[ref]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Cancellation != nil {
		b.Cancellation.RefundStatus = status
	}
	return nil
}

type fakePaymentRepo struct {
	payments     map[string]*models.Payment
	captureCalls int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, paymentRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.GatewayOrderID == orderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, paymentRepo.ErrNotFound
}

func (f *fakePaymentRepo) GetActiveByBooking(ctx context.Context, bookingRef string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.BookingRef == bookingRef &&
			p.Status != models.PaymentStatusFailed && p.Status != models.PaymentStatusCancelled {
			cp := *p
			return &cp, nil
		}
	}
	return nil, paymentRepo.ErrNotFound
}

func (f *fakePaymentRepo) MarkCaptured(ctx context.Context, id, gatewayPaymentID, signature, method string) (bool, error) {
	f.captureCalls++
	p, ok := f.payments[id]
	if !ok {
		return false, paymentRepo.ErrNotFound
	}
	if p.Status != models.PaymentStatusCreated && p.Status != models.PaymentStatusAuthorized {
		return false, nil
	}
	p.Status = models.PaymentStatusCaptured
	p.GatewayPaymentID = gatewayPaymentID
	p.GatewaySignature = signature
	p.Method = method
	return true, nil
}

func (f *fakePaymentRepo) MarkCancelled(ctx context.Context, id string) (bool, error) {
	p, ok := f.payments[id]
	if !ok {
		return false, paymentRepo.ErrNotFound
	}
	if p.Status != models.PaymentStatusCreated {
		return false, nil
	}
	p.Status = models.PaymentStatusCancelled
	return true, nil
}

func (f *fakePaymentRepo) MarkFailed(ctx context.Context, id, reason string) error {
	p, ok := f.payments[id]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	p.Status = models.PaymentStatusFailed
	p.FailureReason = reason
	return nil
}

func (f *fakePaymentRepo) AppendRefund(ctx context.Context, id string, refund models.RefundRecord, newStatus models.PaymentStatus) error {
	p, ok := f.payments[id]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	p.Refunds = append(p.Refunds, refund)
	p.Status = newStatus
	return nil
}

// fakeGateway scripts gateway behavior per call.
type fakeGateway struct {
	orderCalls   int
	refundCalls  int
	failFirstN   int
	refundErr    error
	lastRefunded int64
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	g.orderCalls++
	if g.orderCalls <= g.failFirstN {
		return nil, errors.New("gateway unreachable")
	}
	return &Order{ID: "order_abc", Amount: amount, Currency: currency}, nil
}

func (g *fakeGateway) Refund(ctx context.Context, gatewayPaymentID string, amount int64, notes map[string]string) (string, error) {
	g.refundCalls++
	if g.refundErr != nil {
		return "", g.refundErr
	}
	g.lastRefunded = amount
	return "rfnd_xyz", nil
}

type recordingPublisher struct {
	types    []string
	payloads []interface{}
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	p.types = append(p.types, eventType)
	p.payloads = append(p.payloads, data)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type recordingRefundQueue struct {
	enqueued []string
	amounts  []int64
}

func (q *recordingRefundQueue) EnqueueRefund(ctx context.Context, paymentID string, amount int64, reason string) error {
	q.enqueued = append(q.enqueued, paymentID)
	q.amounts = append(q.amounts, amount)
	return nil
}
