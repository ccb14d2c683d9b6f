package booking

import (
	"context"
	"errors"
	"time"

	hotelRepo "wanderstay/database/repository/hotel"
	"wanderstay/models"
)

// Validator enforces the temporal and business constraints on a
// reservation request before anything is persisted. Checks run in a
// fixed order and fail fast with a distinct error kind.
type Validator struct {
	Hotels          hotelRepo.HotelRepository
	MaxAdvanceDays  int
	MinAdvanceHours int
	Now             func() time.Time
}

func (v *Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

// Validate checks the request and returns the referenced hotel so the
// caller can reuse its pricing fields without a second lookup.
func (v *Validator) Validate(ctx context.Context, req models.CreateBookingRequest) (*models.Hotel, error) {
	now := v.now()

	if !req.CheckIn.After(now) {
		return nil, ErrInvalidDate
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidDate
	}
	if req.CheckIn.After(now.AddDate(0, 0, v.MaxAdvanceDays)) {
		return nil, ErrAdvanceLimitExceeded
	}
	if req.CheckIn.Before(now.Add(time.Duration(v.MinAdvanceHours) * time.Hour)) {
		return nil, ErrAdvanceLimitTooSoon
	}

	hotel, err := v.Hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	if !hotel.Active {
		return nil, ErrHotelUnavailable
	}
	return hotel, nil
}
