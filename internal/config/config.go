package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the process reads from the environment. JWTSecret
// has no default on purpose; the process refuses to start without one.
type Config struct {
	Port string `env:"PORT, default=8080"`

	DBHost     string `env:"DB_HOST, default=localhost"`
	DBPort     string `env:"DB_PORT, default=5432"`
	DBUser     string `env:"DB_USER, default=postgres"`
	DBPassword string `env:"DB_PASSWORD, default=postgres"`
	DBName     string `env:"DB_NAME, default=lawdesk"`
	DBSSLMode  string `env:"DB_SSLMODE, default=disable"`

	JWTSecret      string        `env:"JWT_SECRET, required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=720h"`

	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminEmail    string `env:"ADMIN_EMAIL, default=admin@lawdesk.local"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin12345"`

	LogLevel string `env:"LOG_LEVEL, default=info"`
}

// Load reads configs/.env if present, then resolves the config from the
// environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
