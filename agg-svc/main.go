package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"veg-catering/agg-svc/internal/service"
	"veg-catering/agg-svc/internal/storage"
	"veg-catering/config"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	if !cfg.KafkaEnabled() || !cfg.RedisEnabled() {
		logger.Fatal("agg-svc needs KAFKA_BROKER and REDIS_HOST")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg, logger)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg, cfg.BookingTopic, cfg.AggGroupID)
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb), logger.Named("consumer"))
	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}
