package storage

import (
	"context"
	"strconv"
	"time"

	"veg-catering/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	dailyRetention     = 30 * 24 * time.Hour
	processedRetention = 7 * 24 * time.Hour
)

// Store keeps booking aggregates in redis: dish popularity by ordered
// quantity, bookings per day and bookings per status.
type Store struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{
		rdb: rdb,
		now: time.Now,
	}
}

func (s *Store) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	return s.rdb.SetNX(ctx, domain.ProcessedPrefix+eventID, 1, processedRetention).Result()
}

func (s *Store) RecordBooking(ctx context.Context, evt domain.BookingEvent) error {
	day := evt.Timestamp
	if day.IsZero() {
		day = s.now()
	}
	dailyKey := domain.DailyBookingsPrefix + day.UTC().Format(time.DateOnly)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		addDishes(ctx, pipe, evt.Dishes, 1)
		pipe.Incr(ctx, dailyKey)
		pipe.Expire(ctx, dailyKey, dailyRetention)
		pipe.HIncrBy(ctx, domain.BookingStatusKey, statusOrPending(evt.Status), 1)
		return nil
	})
	return err
}

// RecordStatusChange moves the booking between status counters. A cancelled
// booking no longer counts towards dish popularity, and reinstating it adds it
// back.
func (s *Store) RecordStatusChange(ctx context.Context, evt domain.BookingEvent) error {
	if evt.PreviousStatus == evt.Status {
		return nil
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if evt.PreviousStatus != "" {
			pipe.HIncrBy(ctx, domain.BookingStatusKey, evt.PreviousStatus, -1)
		}
		pipe.HIncrBy(ctx, domain.BookingStatusKey, evt.Status, 1)

		switch {
		case evt.Status == domain.StatusCanceled:
			addDishes(ctx, pipe, evt.Dishes, -1)
		case evt.PreviousStatus == domain.StatusCanceled:
			addDishes(ctx, pipe, evt.Dishes, 1)
		}
		return nil
	})
	return err
}

func addDishes(ctx context.Context, pipe redis.Pipeliner, dishes []domain.EventDish, sign int) {
	for _, d := range dishes {
		member := strconv.Itoa(d.DishID)
		pipe.ZIncrBy(ctx, domain.PopularDishesKey, float64(sign*d.Quantity), member)
		if d.Name != "" {
			pipe.HSet(ctx, domain.DishNamesKey, member, d.Name)
		}
	}
}

func statusOrPending(status string) string {
	if status == "" {
		return "pending"
	}
	return status
}
