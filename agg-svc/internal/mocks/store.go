package mocks

import (
	"context"

	"veg-catering/agg-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type StoreInterface struct {
	mock.Mock
}

func NewStoreInterface(t testingT) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *StoreInterface) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ret := _m.Called(ctx, eventID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *StoreInterface) RecordBooking(ctx context.Context, evt domain.BookingEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

func (_m *StoreInterface) RecordStatusChange(ctx context.Context, evt domain.BookingEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

type MessageReader struct {
	mock.Mock
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := _m.Called(ctx)
	msg, _ := ret.Get(0).(kafka.Message)
	return msg, ret.Error(1)
}
