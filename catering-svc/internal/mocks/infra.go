package mocks

import (
	"context"
	"time"

	"veg-catering/catering-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogCache struct {
	mock.Mock
}

func NewCatalogCache(t testingT) *CatalogCache {
	m := &CatalogCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CatalogCache) CuisinesKey() string {
	return _m.Called().String(0)
}

func (_m *CatalogCache) DishesKey(cuisineID int) string {
	return _m.Called(cuisineID).String(0)
}

func (_m *CatalogCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	ret := _m.Called(ctx, key, dst)
	return ret.Bool(0), ret.Error(1)
}

func (_m *CatalogCache) Set(ctx context.Context, key string, value any) error {
	return _m.Called(ctx, key, value).Error(0)
}

func (_m *CatalogCache) Invalidate(ctx context.Context, keys ...string) error {
	return _m.Called(ctx, keys).Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *EventPublisher) PublishBooking(ctx context.Context, evt domain.BookingEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *QRGenerator) Generate(bookingID int) ([]byte, error) {
	ret := _m.Called(bookingID)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

type AnalyticsReader struct {
	mock.Mock
}

func NewAnalyticsReader(t testingT) *AnalyticsReader {
	m := &AnalyticsReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *AnalyticsReader) TopDishes(ctx context.Context, limit int) ([]domain.DishPopularity, error) {
	ret := _m.Called(ctx, limit)
	out, _ := ret.Get(0).([]domain.DishPopularity)
	return out, ret.Error(1)
}

func (_m *AnalyticsReader) DailyBookings(ctx context.Context, day time.Time) (int64, error) {
	ret := _m.Called(ctx, day)
	out, _ := ret.Get(0).(int64)
	return out, ret.Error(1)
}
