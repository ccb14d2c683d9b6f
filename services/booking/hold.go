package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// InventoryHold is the seam for short-lived room-night holds during the
// payment window. The reference system performs no overbooking control,
// so the default wiring is NoopHold; RedisHold exists for deployments
// that opt in.
type InventoryHold interface {
	// Hold reserves the room-nights and returns a release function.
	Hold(ctx context.Context, hotelID string, checkIn, checkOut time.Time, rooms int) (func(), error)
}

// NoopHold performs no inventory control.
type NoopHold struct{}

func (NoopHold) Hold(ctx context.Context, hotelID string, checkIn, checkOut time.Time, rooms int) (func(), error) {
	return func() {}, nil
}

// RedisHold takes a best-effort SETNX lock per hotel/date-range with a
// TTL sized to the payment window.
type RedisHold struct {
	Client *redis.Client
	TTL    time.Duration
}

func holdKey(hotelID string, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("hold:%s:%s:%s", hotelID, checkIn.UTC().Format("20060102"), checkOut.UTC().Format("20060102"))
}

func (h *RedisHold) Hold(ctx context.Context, hotelID string, checkIn, checkOut time.Time, rooms int) (func(), error) {
	key := holdKey(hotelID, checkIn, checkOut)
	ttl := h.TTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	ok, err := h.Client.SetNX(ctx, key, rooms, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquiring room hold: %w", err)
	}
	if !ok {
		return nil, ErrRoomsUnavailable
	}
	release := func() {
		h.Client.Del(context.Background(), key)
	}
	return release, nil
}
