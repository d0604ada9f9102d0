package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	httpapi "veg-catering/catering-svc/internal/api/http"
	"veg-catering/catering-svc/internal/seed"
	"veg-catering/catering-svc/internal/service"
	"veg-catering/catering-svc/internal/storage"
	"veg-catering/config"

	"go.uber.org/zap"
)

type repositories interface {
	service.CuisineRepository
	service.DishRepository
	service.BookingRepository
	service.ContactRepository
	service.UserRepository
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	if cfg.InsecureJWTSecret() {
		logger.Warn("JWT_SECRET not set, signing tokens with the default secret",
			zap.String("storage", cfg.StorageDriver))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := openStore(ctx, cfg, logger)

	var cache service.CatalogCache
	var analytics service.AnalyticsReader
	if cfg.RedisEnabled() {
		rdb := config.MustInitRedis(cfg, logger)
		defer rdb.Close()
		cache = storage.NewRedisCatalogCache(rdb, cfg.CatalogCacheTTL)
		analytics = storage.NewRedisAnalytics(rdb)
	}

	var publisher service.EventPublisher
	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg, cfg.BookingTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	if cfg.SeedCatalog {
		if _, err := seed.Catalog(ctx, repo, repo, logger); err != nil {
			logger.Fatal("catalog seed failed", zap.Error(err))
		}
	}

	authSvc := service.NewAuthService(repo, cfg.JWTSecret, cfg.JWTTTL, logger)
	if err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Fatal("admin bootstrap failed", zap.Error(err))
	}

	handler := httpapi.NewHandler(
		service.NewCatalogService(repo, repo, cache, logger),
		service.NewBookingService(repo, publisher, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}, logger),
		service.NewContactService(repo, logger),
		authSvc,
		service.NewUserService(repo),
		service.NewAdminService(repo, repo, repo, analytics, logger),
	)

	if err := httpapi.StartServer(ctx, ":"+cfg.Port, httpapi.NewRouter(handler, logger), logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) repositories {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("using in-memory store")
		return storage.NewMemoryStore()
	}

	db := config.MustInitPostgres(cfg, logger)
	pg := storage.NewPostgresRepository(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema bootstrap failed", zap.Error(err))
	}
	logger.Info("using postgres store", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	return pg
}
