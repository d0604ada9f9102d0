package tests

import (
	"context"
	"testing"
	"time"

	"veg-catering/agg-svc/internal/domain"
	"veg-catering/agg-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*miniredis.Miniredis, *storage.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, storage.NewStore(rdb)
}

func TestStore_RecordBooking(t *testing.T) {
	ctx := context.Background()
	mr, store := setupStore(t)

	evt := createdEvent()
	evt.Timestamp = time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	evt.Dishes = append(evt.Dishes, domain.EventDish{DishID: 5, Name: "Paneer Butter Masala", Quantity: 1})

	require.NoError(t, store.RecordBooking(ctx, evt))
	require.NoError(t, store.RecordBooking(ctx, evt))

	score, err := mr.ZScore(domain.PopularDishesKey, "1")
	require.NoError(t, err)
	assert.Equal(t, float64(4), score)
	score, err = mr.ZScore(domain.PopularDishesKey, "5")
	require.NoError(t, err)
	assert.Equal(t, float64(2), score)

	assert.Equal(t, "Masala Dosa", mr.HGet(domain.DishNamesKey, "1"))

	daily, err := mr.Get(domain.DailyBookingsPrefix + "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, "2", daily)
	assert.Greater(t, mr.TTL(domain.DailyBookingsPrefix+"2026-10-18"), time.Duration(0))

	assert.Equal(t, "2", mr.HGet(domain.BookingStatusKey, "pending"))
}

func TestStore_RecordStatusChange(t *testing.T) {
	ctx := context.Background()
	mr, store := setupStore(t)
	require.NoError(t, store.RecordBooking(ctx, createdEvent()))

	tests := []struct {
		name      string
		previous  string
		status    string
		wantScore float64
		wantCount map[string]string
	}{
		{
			name: "confirm", previous: "pending", status: "confirmed", wantScore: 2,
			wantCount: map[string]string{"pending": "0", "confirmed": "1"},
		},
		{
			name: "cancel_removes_popularity", previous: "confirmed", status: "canceled", wantScore: 0,
			wantCount: map[string]string{"confirmed": "0", "canceled": "1"},
		},
		{
			name: "reinstate_restores_popularity", previous: "canceled", status: "pending", wantScore: 2,
			wantCount: map[string]string{"canceled": "0", "pending": "1"},
		},
		{
			name: "same_status_is_noop", previous: "pending", status: "pending", wantScore: 2,
			wantCount: map[string]string{"pending": "1"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			evt := createdEvent()
			evt.Type = domain.EventBookingStatusChanged
			evt.PreviousStatus = testCase.previous
			evt.Status = testCase.status

			require.NoError(t, store.RecordStatusChange(ctx, evt))

			score, err := mr.ZScore(domain.PopularDishesKey, "1")
			require.NoError(t, err)
			assert.Equal(t, testCase.wantScore, score)
			for status, want := range testCase.wantCount {
				assert.Equal(t, want, mr.HGet(domain.BookingStatusKey, status), status)
			}
		})
	}
}

func TestStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()
	mr, store := setupStore(t)

	fresh, err := store.MarkProcessed(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = store.MarkProcessed(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Greater(t, mr.TTL(domain.ProcessedPrefix+"evt-1"), time.Duration(0))

	mr.FastForward(8 * 24 * time.Hour)
	fresh, err = store.MarkProcessed(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, fresh)
}
