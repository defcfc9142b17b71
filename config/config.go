package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	APP struct {
		Name           string        `env:"NAME" envDefault:"imageresizer"`
		Host           string        `env:"HOST" envDefault:"localhost"`
		Port           string        `env:"PORT" envDefault:"5000"`
		Env            string        `env:"ENV" envDefault:"debug"`
		JWTSecret      string        `env:"JWT_SECRET"`
		JWTTTL         time.Duration `env:"JWT_TTL" envDefault:"24h"`
		CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
		TrustedProxies []string      `env:"TRUSTED_PROXIES" envSeparator:","` // empty: forwarding headers ignored
	}
	Storage struct {
		Dir            string `env:"DIR" envDefault:"./uploads"`
		MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	}
	RateLimit struct {
		Window   time.Duration `env:"WINDOW" envDefault:"15m"`
		AuthMax  int           `env:"AUTH_MAX" envDefault:"5"`
		ImageMax int           `env:"IMAGE_MAX" envDefault:"20"`
	}
	Redis struct {
		Addr     string `env:"ADDR"`
		Password string `env:"PASSWORD"`
		DB       int    `env:"DB" envDefault:"0"`
	}
	DB struct {
		User     string `env:"USER"`
		Password string `env:"PASSWORD"`
		Name     string `env:"DB"`
		Host     string `env:"HOST"`
		Port     string `env:"PORT" envDefault:"5432"`
	}
	MQ struct {
		User         string `env:"USER"`
		Password     string `env:"PASSWORD"`
		Vhost        string `env:"VHOST"`
		Host         string `env:"HOST"`
		AmqpPort     string `env:"AMQP_PORT" envDefault:"5672"`
		Exchange     string `env:"EXCHANGE" envDefault:"images"`
		ExchangeType string `env:"EXCHANGE_TYPE" envDefault:"topic"`
		QueueName    string `env:"QUEUE_NAME" envDefault:"images.audit"`
	}

	Config struct {
		App       APP       `envPrefix:"SERVICE_"`
		Storage   Storage   `envPrefix:"STORAGE_"`
		RateLimit RateLimit `envPrefix:"RATE_"`
		Redis     Redis     `envPrefix:"REDIS_"`
		DB        DB        `envPrefix:"POSTGRES_"`
		MQ        MQ        `envPrefix:"RABBITMQ_"`
	}
)

var ErrMissingJWTSecret = errors.New("SERVICE_JWT_SECRET is required")

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.App.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	if cfg.Storage.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("invalid STORAGE_MAX_UPLOAD_BYTES: %d", cfg.Storage.MaxUploadBytes)
	}
	if cfg.RateLimit.Window <= 0 || cfg.RateLimit.AuthMax <= 0 || cfg.RateLimit.ImageMax <= 0 {
		return Config{}, fmt.Errorf("invalid rate limit config: window and limits must be positive")
	}

	return cfg, nil
}

// PostgresEnabled reports whether users should be kept in PostgreSQL
// instead of process memory.
func (c Config) PostgresEnabled() bool { return c.DB.Host != "" }

func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) RedisEnabled() bool { return c.Redis.Addr != "" }

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
