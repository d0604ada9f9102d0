package service

import (
	"context"

	"veg-catering/agg-svc/internal/domain"
	"veg-catering/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	// MarkProcessed reports false when the event id was already applied.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	RecordBooking(ctx context.Context, evt domain.BookingEvent) error
	RecordStatusChange(ctx context.Context, evt domain.BookingEvent) error
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	ProcessEvent(ctx context.Context, evt domain.BookingEvent) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
