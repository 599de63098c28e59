package config

import (
	"os"
	"strings"
)

// Version fallback when no other source is available. Release builds
// override this via APP_VERSION or the VERSION file.
const defaultVersion = "0.1.0"

// GetVersion returns the running service version. Order of precedence:
// APP_VERSION environment variable (set by CI/CD), the VERSION file in
// the working directory, then the compiled-in default.
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	if content, err := os.ReadFile("VERSION"); err == nil {
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}

	return defaultVersion
}
