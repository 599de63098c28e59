package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the miniwx service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8931"`

	// VATSIM datafeed configuration
	VatsimStatusURL string `env:"VATSIM_STATUS_URL,default=https://status.vatsim.net/status.json"`

	// Aviation Weather Center configuration
	AWCBaseURL string `env:"AWC_BASE_URL,default=https://aviationweather.gov"`

	// Update check configuration
	UpdateFeedURL string `env:"UPDATE_FEED_URL,default=https://github.com/kengreim/mini-metars/releases.atom"`

	// Profile storage configuration
	ProfilesDir string `env:"PROFILES_DIR,default=./profiles"`
	GCSBucket   string `env:"GCS_BUCKET"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
