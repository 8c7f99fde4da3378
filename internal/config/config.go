package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	DBPath             string   `env:"DB_PATH" envDefault:"wrestling.db"`
	ServerPort         string   `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	RevalidateSecret     string `env:"REVALIDATE_SECRET"`
	RevalidateWebhookURL string `env:"REVALIDATE_WEBHOOK_URL"`

	DailyPickTimezone string `env:"DAILY_PICK_TIMEZONE" envDefault:"UTC"`

	location *time.Location
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.DailyPickTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DAILY_PICK_TIMEZONE %q: %w", cfg.DailyPickTimezone, err)
	}
	cfg.location = loc

	if cfg.RevalidateSecret == "" {
		logger.Warn().Msg("REVALIDATE_SECRET is not set, revalidation requests will be rejected")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Strs("cors_origins", cfg.CORSAllowedOrigins).
		Str("daily_pick_tz", loc.String()).
		Bool("revalidate_webhook", cfg.RevalidateWebhookURL != "").
		Msg("configuration loaded")

	return cfg, nil
}

// Location is the time zone that decides which calendar day it is for the daily pick.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
