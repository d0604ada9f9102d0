package config

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	DefaultJWTSecret = "changeme"
)

type Config struct {
	Port          string
	StorageDriver string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisHost       string
	RedisPort       string
	CatalogCacheTTL time.Duration

	KafkaBroker  string
	BookingTopic string
	AggGroupID   string

	JWTSecret string
	JWTTTL    time.Duration

	AdminUsername string
	AdminPassword string

	PublicBaseURL string
	SeedCatalog   bool

	GatewayPort    string
	CateringSvcURL string
	FrontendDir    string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8081"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageMemory),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "catering"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", 10*time.Minute),

		KafkaBroker:  os.Getenv("KAFKA_BROKER"),
		BookingTopic: getEnv("BOOKING_TOPIC", "bookings"),
		AggGroupID:   getEnv("AGG_GROUP_ID", "agg-svc-consumer"),

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		SeedCatalog:   getBool("SEED_CATALOG", true),

		GatewayPort:    getEnv("GATEWAY_PORT", "8080"),
		CateringSvcURL: getEnv("CATERING_SVC_URL", "http://localhost:8081"),
		FrontendDir:    getEnv("FRONTEND_DIR", "./frontend"),
	}
}

func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c Config) KafkaEnabled() bool {
	return c.KafkaBroker != ""
}

// InsecureJWTSecret reports a durable store signing tokens with the built-in secret.
func (c Config) InsecureJWTSecret() bool {
	return c.StorageDriver == StoragePostgres && c.JWTSecret == DefaultJWTSecret
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func MustInitPostgres(cfg Config, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	return client
}

func NewKafkaReader(cfg Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
