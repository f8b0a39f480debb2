package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// minSecretLen is the minimum JWT secret length for HS256.
const minSecretLen = 32

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	// RequireVerifiedEmail rejects federated sign-ins whose provider
	// profile reports an unverified email. Off unless explicitly enabled.
	RequireVerifiedEmail bool `env:"REQUIRE_VERIFIED_EMAIL" envDefault:"false"`

	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if len(cfg.JWTSecret) < minSecretLen {
		return Config{}, fmt.Errorf(
			"JWT_SECRET must be at least %d bytes for HS256", minSecretLen,
		)
	}

	return cfg, nil
}
