package config

import (
	"os"
	"testing"
)

func TestGetVersion(t *testing.T) {
	originalVersion := os.Getenv("APP_VERSION")
	defer func() {
		if originalVersion != "" {
			os.Setenv("APP_VERSION", originalVersion)
		} else {
			os.Unsetenv("APP_VERSION")
		}
	}()

	tests := []struct {
		name       string
		envVersion string
		expect     string
	}{
		{
			name:       "version from environment variable",
			envVersion: "1.2.3",
			expect:     "1.2.3",
		},
		{
			name:       "prerelease version from environment",
			envVersion: "2.0.0-beta.1",
			expect:     "2.0.0-beta.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("APP_VERSION", tt.envVersion)

			if got := GetVersion(); got != tt.expect {
				t.Errorf("GetVersion() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestGetVersionFallback(t *testing.T) {
	os.Unsetenv("APP_VERSION")

	// Run from a directory without a VERSION file
	originalDir, _ := os.Getwd()
	os.Chdir(t.TempDir())
	defer os.Chdir(originalDir)

	if got := GetVersion(); got != defaultVersion {
		t.Errorf("GetVersion() = %q, want default %q", got, defaultVersion)
	}
}

func TestGetVersionFromFile(t *testing.T) {
	os.Unsetenv("APP_VERSION")

	originalDir, _ := os.Getwd()
	tempDir := t.TempDir()
	os.Chdir(tempDir)
	defer os.Chdir(originalDir)

	if err := os.WriteFile("VERSION", []byte("3.4.5\n"), 0644); err != nil {
		t.Fatalf("Failed to write VERSION file: %v", err)
	}

	if got := GetVersion(); got != "3.4.5" {
		t.Errorf("GetVersion() = %q, want %q", got, "3.4.5")
	}
}
