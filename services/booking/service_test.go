package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wanderstay/models"
	"wanderstay/services/events"
)

func newTestService(now time.Time) (*DefaultBookingService, *fakeBookingRepo, *fakePaymentRepo, *recordingRefundQueue, *recordingPublisher) {
	repo := newFakeBookingRepo()
	payments := newFakePaymentRepo()
	queue := &recordingRefundQueue{}
	pub := &recordingPublisher{}

	svc := &DefaultBookingService{
		Repo:     repo,
		Payments: payments,
		Validator: &Validator{
			Hotels: &fakeHotelRepo{hotels: map[string]*models.Hotel{
				"h1": {ID: "h1", Name: "Cedar Lodge", City: "Manali", Active: true, PricePerNight: 100000, Currency: "INR"},
			}},
			MaxAdvanceDays:  365,
			MinAdvanceHours: 2,
			Now:             func() time.Time { return now },
		},
		Hold:        NoopHold{},
		Refunds:     queue,
		Events:      pub,
		Logger:      zap.NewNop(),
		PlatformFee: 5000,
		TaxBPS:      1800,
		Now:         func() time.Time { return now },
	}
	return svc, repo, payments, queue, pub
}

func TestCreateBooking(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, _, _ := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Ref)
	assert.Contains(t, resp.Ref, "WS-")
	assert.Equal(t, models.BookingStatusPending, resp.Status)
	assert.Equal(t, models.BookingPaymentPending, resp.PaymentStatus)
	assert.Equal(t, int64(241000), resp.Pricing.Total)
	assert.Equal(t, "Cedar Lodge", resp.HotelName)
	assert.Equal(t, "Manali", resp.HotelCity)

	stored, err := repo.GetByRef(context.Background(), resp.Ref)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)
	assert.Nil(t, stored.Cancellation)
}

func TestCreateBookingDistinctRefs(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newTestService(now)

	first, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	// Resubmission creates a new distinct booking.
	assert.NotEqual(t, first.Ref, second.Ref)
}

func TestCreateBookingHoldFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, _, _ := newTestService(now)
	svc.Hold = failingHold{}

	_, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.Error(t, err)
	assert.Empty(t, repo.bookings)
}

func TestGetOwnership(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "u2", "user", resp.Ref)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), "u2", "admin", resp.Ref)
	require.NoError(t, err)
	assert.Equal(t, resp.Ref, got.Ref)

	_, err = svc.Get(context.Background(), "u1", "user", "WS-NOPE")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelFullRefundTier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, payments, queue, pub := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now)) // check-in 72h out
	require.NoError(t, err)

	// Attach a captured payment so the refund path engages.
	payments.payments["p1"] = &models.Payment{
		ID: "p1", BookingRef: resp.Ref, Amount: 241000, Status: models.PaymentStatusCaptured,
	}
	require.NoError(t, repo.SetPaymentRef(context.Background(), resp.Ref, "p1"))
	confirmed, err := repo.MarkConfirmed(context.Background(), resp.Ref)
	require.NoError(t, err)
	require.True(t, confirmed)

	out, err := svc.Cancel(context.Background(), resp.Ref, "u1", "change of plans")
	require.NoError(t, err)

	assert.Equal(t, int64(241000), out.RefundAmount)
	assert.Equal(t, models.RefundStatusPending, out.RefundStatus)
	assert.Equal(t, models.BookingStatusCancelled, out.Booking.Status)
	require.NotNil(t, out.Booking.Cancellation)
	assert.Equal(t, "u1", out.Booking.Cancellation.CancelledBy)
	assert.Equal(t, []string{"p1"}, queue.enqueued)
	assert.Equal(t, []int64{241000}, queue.amounts)
	assert.Contains(t, pub.types, events.TypeBookingCancelled)
}

func TestCancelHalfRefundTier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	// Move the clock to 30 hours before check-in.
	later := resp.CheckIn.Add(-30 * time.Hour)
	svc.Now = func() time.Time { return later }

	out, err := svc.Cancel(context.Background(), resp.Ref, "u1", "plans changed")
	require.NoError(t, err)
	assert.Equal(t, int64(120500), out.RefundAmount)
	// No captured payment: nothing to refund asynchronously.
	assert.Equal(t, models.RefundStatusNone, out.RefundStatus)
}

func TestCancelWindowClosed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, queue, _ := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	later := resp.CheckIn.Add(-10 * time.Hour)
	svc.Now = func() time.Time { return later }

	_, err = svc.Cancel(context.Background(), resp.Ref, "u1", "too late")
	assert.ErrorIs(t, err, ErrCancellationWindowClosed)

	stored, err := repo.GetByRef(context.Background(), resp.Ref)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
	assert.Nil(t, stored.Cancellation)
	assert.Empty(t, queue.enqueued)
}

func TestCancelGuards(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), resp.Ref, "intruder", "not mine")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Cancel(context.Background(), resp.Ref, "u1", "first")
	require.NoError(t, err)

	// Cancelled is terminal.
	_, err = svc.Cancel(context.Background(), resp.Ref, "u1", "again")
	assert.ErrorIs(t, err, ErrInvalidBookingState)
}

func TestCancelSurvivesEnqueueFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, payments, queue, _ := newTestService(now)
	queue.err = assert.AnError

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)
	payments.payments["p1"] = &models.Payment{
		ID: "p1", BookingRef: resp.Ref, Amount: 241000, Status: models.PaymentStatusCaptured,
	}
	require.NoError(t, repo.SetPaymentRef(context.Background(), resp.Ref, "p1"))

	out, err := svc.Cancel(context.Background(), resp.Ref, "u1", "gateway hiccup")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, out.Booking.Status)
	assert.Equal(t, models.RefundStatusPending, out.RefundStatus)
}

func TestCancelVoidsUnsettledPayment(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, payments, queue, _ := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	// An order was issued but never paid: no money moved yet.
	payments.payments["p1"] = &models.Payment{
		ID: "p1", BookingRef: resp.Ref, Amount: 241000, Status: models.PaymentStatusCreated,
	}
	require.NoError(t, repo.SetPaymentRef(context.Background(), resp.Ref, "p1"))

	out, err := svc.Cancel(context.Background(), resp.Ref, "u1", "change of plans")
	require.NoError(t, err)

	// The unsettled payment is voided so a late gateway callback cannot
	// settle it, and nothing is refunded.
	p, err := payments.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCancelled, p.Status)
	assert.Equal(t, models.RefundStatusNone, out.RefundStatus)
	assert.Empty(t, queue.enqueued)
}

func TestUpdatePatchesAllowedFieldsOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	roomType := "suite"
	adults := 3
	updated, err := svc.Update(context.Background(), resp.Ref, models.UpdateBookingRequest{
		RoomType: &roomType,
		Adults:   &adults,
	})
	require.NoError(t, err)

	assert.Equal(t, "suite", updated.RoomType)
	assert.Equal(t, 3, updated.Adults)
	// Pricing, owner and hotel are untouchable through the patch.
	assert.Equal(t, resp.Pricing, updated.Pricing)
	assert.Equal(t, "u1", updated.UserID)
	assert.Equal(t, "h1", updated.HotelID)
}

func TestFinalizeTransitions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, _, _ := newTestService(now)

	resp, err := svc.Create(context.Background(), "u1", validRequest(now))
	require.NoError(t, err)

	// Completed requires a confirmed booking.
	_, err = svc.MarkCompleted(context.Background(), resp.Ref)
	assert.ErrorIs(t, err, ErrInvalidBookingState)

	confirmed, err := repo.MarkConfirmed(context.Background(), resp.Ref)
	require.NoError(t, err)
	require.True(t, confirmed)
	done, err := svc.MarkCompleted(context.Background(), resp.Ref)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, done.Status)

	// Terminal states stay terminal.
	_, err = svc.MarkNoShow(context.Background(), resp.Ref)
	assert.ErrorIs(t, err, ErrInvalidBookingState)
}
