package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	JWTSecret string `env:"JWT_SECRET"`
	// ClientURL is the storefront origin: the only allowed CORS origin and
	// the base for payment redirect URLs.
	ClientURL string `env:"CLIENT_URL, default=http://localhost:3000"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Stripe StripeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gadget_store"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=smtp.sendgrid.net"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER, default=apikey"`
	Password string `env:"SENDGRID_API_KEY"`
	From     string `env:"MAIL_FROM, default=orders@gadgetlab.dev"`
}

type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
