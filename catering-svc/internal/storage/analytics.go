package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

// RedisAnalytics reads the counters agg-svc maintains from booking events.
type RedisAnalytics struct {
	Client *redis.Client
}

func NewRedisAnalytics(client *redis.Client) *RedisAnalytics {
	return &RedisAnalytics{Client: client}
}

var _ service.AnalyticsReader = (*RedisAnalytics)(nil)

func (a *RedisAnalytics) TopDishes(ctx context.Context, limit int) ([]domain.DishPopularity, error) {
	entries, err := a.Client.ZRevRangeWithScores(ctx, domain.PopularDishesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	top := make([]domain.DishPopularity, 0, len(entries))
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		member, _ := entry.Member.(string)
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		ids = append(ids, member)
		top = append(top, domain.DishPopularity{DishID: id, Quantity: int64(entry.Score)})
	}
	if len(ids) == 0 {
		return top, nil
	}

	names, err := a.Client.HMGet(ctx, domain.DishNamesKey, ids...).Result()
	if err != nil {
		return nil, err
	}
	for i, name := range names {
		if s, ok := name.(string); ok {
			top[i].Name = s
		}
	}
	return top, nil
}

func (a *RedisAnalytics) DailyBookings(ctx context.Context, day time.Time) (int64, error) {
	count, err := a.Client.Get(ctx, domain.DailyBookingsPrefix+day.UTC().Format(time.DateOnly)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return count, err
}
