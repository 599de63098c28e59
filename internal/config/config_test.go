package config

import (
	"context"
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "defaults",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8931" {
					t.Errorf("Expected default Port to be '8931', got '%s'", cfg.Port)
				}
				if cfg.VatsimStatusURL != "https://status.vatsim.net/status.json" {
					t.Errorf("Unexpected default VatsimStatusURL: '%s'", cfg.VatsimStatusURL)
				}
				if cfg.AWCBaseURL != "https://aviationweather.gov" {
					t.Errorf("Unexpected default AWCBaseURL: '%s'", cfg.AWCBaseURL)
				}
				if cfg.ProfilesDir != "./profiles" {
					t.Errorf("Expected default ProfilesDir to be './profiles', got '%s'", cfg.ProfilesDir)
				}
				if cfg.Environment != "development" {
					t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
				}
				if cfg.LogLevel != "info" {
					t.Errorf("Expected default LogLevel to be 'info', got '%s'", cfg.LogLevel)
				}
			},
		},
		{
			name: "custom configuration values",
			envVars: map[string]string{
				"PORT":              "9100",
				"VATSIM_STATUS_URL": "http://localhost:9999/status.json",
				"AWC_BASE_URL":      "http://localhost:9998",
				"PROFILES_DIR":      "/var/lib/miniwx/profiles",
				"GCS_BUCKET":        "miniwx-profiles",
				"ENVIRONMENT":       "production",
				"LOG_LEVEL":         "debug",
				"LOG_FORMAT":        "json",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9100" {
					t.Errorf("Expected Port '9100', got '%s'", cfg.Port)
				}
				if cfg.VatsimStatusURL != "http://localhost:9999/status.json" {
					t.Errorf("Unexpected VatsimStatusURL: '%s'", cfg.VatsimStatusURL)
				}
				if cfg.AWCBaseURL != "http://localhost:9998" {
					t.Errorf("Unexpected AWCBaseURL: '%s'", cfg.AWCBaseURL)
				}
				if cfg.ProfilesDir != "/var/lib/miniwx/profiles" {
					t.Errorf("Unexpected ProfilesDir: '%s'", cfg.ProfilesDir)
				}
				if cfg.GCSBucket != "miniwx-profiles" {
					t.Errorf("Unexpected GCSBucket: '%s'", cfg.GCSBucket)
				}
				if cfg.Environment != "production" {
					t.Errorf("Unexpected Environment: '%s'", cfg.Environment)
				}
				if cfg.LogLevel != "debug" {
					t.Errorf("Unexpected LogLevel: '%s'", cfg.LogLevel)
				}
				if cfg.LogFormat != "json" {
					t.Errorf("Unexpected LogFormat: '%s'", cfg.LogFormat)
				}
			},
		},
	}

	keys := []string{
		"PORT", "VATSIM_STATUS_URL", "AWC_BASE_URL", "UPDATE_FEED_URL",
		"PROFILES_DIR", "GCS_BUCKET", "ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range keys {
				os.Unsetenv(key)
			}
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}
			defer func() {
				for _, key := range keys {
					os.Unsetenv(key)
				}
			}()

			cfg, err := Load(context.Background())
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			tt.validate(t, cfg)
		})
	}
}
