package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, loaded from the environment.
type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// memory | redis | mongo | postgres
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDBName string `env:"MONGO_DB_NAME" envDefault:"studiodb"`

	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDBName   string `env:"POSTGRES_DB_NAME" envDefault:"studiodb"`
	MigrationsPath   string `env:"MIGRATIONS_PATH" envDefault:"internal/storage/migrations"`

	// empty = events disabled
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// hosted payment links; empty = payment disabled
	PaymentLinkFallback string            `env:"PAYMENT_LINK"`
	PaymentLinks        map[string]string `env:"PAYMENT_LINKS"` // id:url pairs
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
