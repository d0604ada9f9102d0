package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"veg-catering/agg-svc/internal/domain"

	"go.uber.org/zap"
)

const readRetryDelay = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Logger *zap.Logger
}

func NewConsumer(reader MessageReader, store StoreInterface, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,
	}
}

// Start reads booking events until ctx is cancelled. Malformed messages and
// failed updates are logged and skipped.
func (c *Consumer) Start(ctx context.Context) error {
	c.Logger.Info("aggregation consumer starting")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if ctx.Err() != nil {
			c.Logger.Info("aggregation consumer stopped")
			return nil
		}
		if err != nil {
			c.Logger.Warn("read message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var evt domain.BookingEvent
		if err := json.Unmarshal(message.Value, &evt); err != nil {
			c.Logger.Warn("skipping malformed message",
				zap.Int64("offset", message.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.ProcessEvent(ctx, evt); err != nil {
			c.Logger.Error("booking event not applied",
				zap.String("event_id", evt.EventID),
				zap.Int("booking_id", evt.BookingID),
				zap.Error(err),
			)
		}
	}
}

// ProcessEvent applies one event. Redelivered events with a known id are
// ignored; unknown event types are skipped.
func (c *Consumer) ProcessEvent(ctx context.Context, evt domain.BookingEvent) error {
	var apply func(context.Context, domain.BookingEvent) error
	switch evt.Type {
	case domain.EventBookingCreated:
		apply = c.Store.RecordBooking
	case domain.EventBookingStatusChanged:
		apply = c.Store.RecordStatusChange
	default:
		c.Logger.Debug("ignoring event", zap.String("type", evt.Type))
		return nil
	}

	if evt.EventID != "" {
		fresh, err := c.Store.MarkProcessed(ctx, evt.EventID)
		if err != nil {
			return fmt.Errorf("dedupe event %s: %w", evt.EventID, err)
		}
		if !fresh {
			c.Logger.Debug("duplicate event", zap.String("event_id", evt.EventID))
			return nil
		}
	}

	if err := apply(ctx, evt); err != nil {
		return fmt.Errorf("%s for booking %d: %w", evt.Type, evt.BookingID, err)
	}
	c.Logger.Info("booking event applied",
		zap.String("type", evt.Type),
		zap.Int("booking_id", evt.BookingID),
	)
	return nil
}
