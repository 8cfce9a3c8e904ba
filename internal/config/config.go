// Package config loads process configuration from the environment.
//
// Configuration is read once in main and injected into the layers that
// need it — nothing reads os.Getenv ad hoc. A .env file in the working
// directory is honoured for local development; real deployments set
// the variables directly.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every process-wide setting. It is immutable after Load.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/mediahub.db"`

	// TokenSecret signs session tokens. Minimum 16 chars is enforced by
	// auth.NewTokenService; generate with `openssl rand -hex 32`.
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// BcryptCost is the password hashing work factor.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// Defaults stamped onto every newly created account.
	ProfileImage string `env:"PROFILE_IMAGE" envDefault:"/static/img/default-profile.png"`
	ThemeImage   string `env:"THEME_IMAGE" envDefault:"/static/img/default-theme.png"`

	// Password reset mail delivery. When the Postmark tokens are unset
	// the server falls back to a log-only sender (local development).
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@mediahub.local"`
	ResetURL             string `env:"RESET_URL" envDefault:"http://localhost:3000/passwordupdate"`
}

// Load reads a .env file if present, then parses the environment into
// a Config. Missing required variables fail loading.
func Load() (Config, error) {
	// The .env file is optional — ignore "not found".
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("config: invalid PORT %d", cfg.Port)
	}
	if cfg.DBPath == "" {
		return Config{}, errors.New("config: DB_PATH must not be empty")
	}

	return cfg, nil
}
