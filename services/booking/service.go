package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "wanderstay/database/repository/booking"
	paymentRepo "wanderstay/database/repository/payment"
	"wanderstay/models"
	"wanderstay/services/events"
	"wanderstay/utils"

	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Payments  paymentRepo.PaymentRepository
	Validator *Validator
	Hold      InventoryHold
	Refunds   RefundQueue
	Events    events.Publisher
	Logger    *zap.Logger

	// Pricing inputs; minor units and basis points.
	PlatformFee int64
	TaxBPS      int64

	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates and prices a reservation request, then persists a
// booking in pending/pending state. Re-submission creates a new distinct
// booking: the public surface carries no client idempotency token.
func (s *DefaultBookingService) Create(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.BookingResponse, error) {
	hotel, err := s.Validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Ref:             utils.NewBookingRef(),
		UserID:          userID,
		HotelID:         hotel.ID,
		CheckIn:         req.CheckIn.UTC(),
		CheckOut:        req.CheckOut.UTC(),
		Adults:          req.Adults,
		Children:        req.Children,
		Rooms:           req.Rooms,
		RoomType:        req.RoomType,
		Guest:           models.GuestContact(req.Guest),
		SpecialRequests: req.SpecialRequests,
		Status:          models.BookingStatusPending,
		PaymentStatus:   models.BookingPaymentPending,
		CreatedAt:       s.now().UTC(),
		UpdatedAt:       s.now().UTC(),
	}
	booking.Pricing = Quote(hotel.PricePerNight, int64(req.Rooms), booking.Nights(), s.PlatformFee, s.TaxBPS, hotel.Currency)

	release, err := s.Hold.Hold(ctx, hotel.ID, booking.CheckIn, booking.CheckOut, req.Rooms)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, booking); err != nil {
		release()
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("ref", booking.Ref),
		zap.String("hotel", hotel.ID),
		zap.Int64("total", booking.Pricing.Total),
	)

	return &models.BookingResponse{
		Booking:   *booking,
		HotelName: hotel.Name,
		HotelCity: hotel.City,
	}, nil
}

// Get returns a booking visible to the acting user: owners see their own
// bookings, admins see everything.
func (s *DefaultBookingService) Get(ctx context.Context, actingUserID, role, ref string) (*models.Booking, error) {
	booking, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actingUserID && role != "admin" {
		return nil, ErrForbidden
	}
	return booking, nil
}

// ListByUser returns all bookings owned by the given user.
func (s *DefaultBookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.GetByUser(ctx, userID)
}

// ListByHotel returns all bookings for the given hotel.
func (s *DefaultBookingService) ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	return s.Repo.GetByHotel(ctx, hotelID)
}

// MarkCompleted transitions a confirmed booking to completed. Operational
// tooling only; terminal.
func (s *DefaultBookingService) MarkCompleted(ctx context.Context, ref string) (*models.Booking, error) {
	return s.finalize(ctx, ref, models.BookingStatusCompleted)
}

// MarkNoShow transitions a confirmed booking to no_show. Operational
// tooling only; terminal.
func (s *DefaultBookingService) MarkNoShow(ctx context.Context, ref string) (*models.Booking, error) {
	return s.finalize(ctx, ref, models.BookingStatusNoShow)
}

func (s *DefaultBookingService) finalize(ctx context.Context, ref string, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, ErrInvalidBookingState
	}
	booking.Status = status
	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *DefaultBookingService) load(ctx context.Context, ref string) (*models.Booking, error) {
	booking, err := s.Repo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}
