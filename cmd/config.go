package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string `env:"HTTP_PORT" envDefault:"8082"`
	DBHost                 string `env:"DB_HOST" envDefault:"localhost"`
	DBPort                 string `env:"DB_PORT" envDefault:"5432"`
	DBUser                 string `env:"DB_USER" envDefault:"postgres"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBName                 string `env:"DB_NAME" envDefault:"fulfillment"`
	DBSslMode              string `env:"DB_SSLMODE" envDefault:"disable"`
	KafkaHost              string `env:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"orders.changed"`
	OrderConflictRetries   int    `env:"ORDER_CONFLICT_RETRIES" envDefault:"3"`
	ReconcileSchedule      string `env:"RECONCILE_SCHEDULE" envDefault:"0 */5 * * * *"`
	LogDevelopment         bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// LoadConfig reads the optional env files and then the process environment.
// Variables already set in the environment win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.OrderConflictRetries < 0 {
		return Config{}, fmt.Errorf("ORDER_CONFLICT_RETRIES must not be negative, got %d", cfg.OrderConflictRetries)
	}
	return cfg, nil
}

// DSN returns the postgres connection URL shared by gorm, pgx and the migrator.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// KafkaEnabled reports whether order-changed events are sent to Kafka.
func (c Config) KafkaEnabled() bool {
	return c.KafkaHost != ""
}
