package tests

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisCatalogCache_Keys(t *testing.T) {
	cache := storage.NewRedisCatalogCache(nil, time.Minute)

	assert.Equal(t, "catalog:cuisines", cache.CuisinesKey())
	assert.Equal(t, "catalog:dishes:all", cache.DishesKey(0))
	assert.Equal(t, "catalog:dishes:cuisine:3", cache.DishesKey(3))
}

func TestRedisCatalogCache_RoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	cache := storage.NewRedisCatalogCache(client, time.Minute)

	var miss []domain.Dish
	found, err := cache.Get(ctx, cache.DishesKey(0), &miss)
	require.NoError(t, err)
	assert.False(t, found)

	dishes := []domain.Dish{masalaDosa()}
	require.NoError(t, cache.Set(ctx, cache.DishesKey(0), dishes))
	assert.Equal(t, time.Minute, mr.TTL("catalog:dishes:all"))

	var hit []domain.Dish
	found, err = cache.Get(ctx, cache.DishesKey(0), &hit)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, hit, 1)
	assert.Equal(t, "Masala Dosa", hit[0].Name)
	assert.True(t, hit[0].Price.Equal(dishes[0].Price))

	mr.FastForward(2 * time.Minute)
	found, err = cache.Get(ctx, cache.DishesKey(0), &hit)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCatalogCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	cache := storage.NewRedisCatalogCache(client, time.Minute)

	require.NoError(t, cache.Set(ctx, cache.CuisinesKey(), []domain.Cuisine{{ID: 1}}))
	require.NoError(t, cache.Set(ctx, cache.DishesKey(1), []domain.Dish{}))

	require.NoError(t, cache.Invalidate(ctx, cache.CuisinesKey(), cache.DishesKey(1)))
	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists("catalog:cuisines"))
	assert.False(t, mr.Exists("catalog:dishes:cuisine:1"))
}

func TestRedisCatalogCache_CorruptEntry(t *testing.T) {
	mr, client := setupRedis(t)
	cache := storage.NewRedisCatalogCache(client, time.Minute)
	require.NoError(t, mr.Set("catalog:cuisines", "{not json"))

	var cuisines []domain.Cuisine
	found, err := cache.Get(context.Background(), cache.CuisinesKey(), &cuisines)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestRedisAnalytics_TopDishes(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	analytics := storage.NewRedisAnalytics(client)

	empty, err := analytics.TopDishes(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = mr.ZAdd(domain.PopularDishesKey, 12, "1")
	require.NoError(t, err)
	_, err = mr.ZAdd(domain.PopularDishesKey, 30, "5")
	require.NoError(t, err)
	_, err = mr.ZAdd(domain.PopularDishesKey, 4, "9")
	require.NoError(t, err)
	mr.HSet(domain.DishNamesKey, "1", "Masala Dosa", "5", "Paneer Butter Masala")

	top, err := analytics.TopDishes(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.DishPopularity{
		{DishID: 5, Name: "Paneer Butter Masala", Quantity: 30},
		{DishID: 1, Name: "Masala Dosa", Quantity: 12},
	}, top)

	all, err := analytics.TopDishes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "", all[2].Name)
}

func TestRedisAnalytics_DailyBookings(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	analytics := storage.NewRedisAnalytics(client)
	day := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

	count, err := analytics.DailyBookings(ctx, day)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, mr.Set(domain.DailyBookingsPrefix+"2026-10-18", "7"))
	count, err = analytics.DailyBookings(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func TestKafkaPublisher_PublishBooking(t *testing.T) {
	writer := &recordingWriter{}
	publisher := storage.NewKafkaPublisher(writer)

	evt := domain.BookingEvent{
		EventID:    "evt-1",
		Type:       domain.EventBookingCreated,
		BookingID:  17,
		Status:     domain.BookingPending,
		GuestCount: 50,
		TotalPrice: "276.00",
		Dishes:     []domain.EventDish{{DishID: 1, Name: "Masala Dosa", Quantity: 2}},
	}
	require.NoError(t, publisher.PublishBooking(context.Background(), evt))
	require.Len(t, writer.messages, 1)
	assert.Equal(t, "17", string(writer.messages[0].Key))

	var decoded domain.BookingEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, evt, decoded)
}
