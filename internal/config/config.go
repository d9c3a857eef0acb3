package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FPLBaseURL          string
	FPLUsername         string
	FPLPassword         string
	FPLTimeout          time.Duration
	DatabaseURL         string
	RefreshInterval     time.Duration
	HTTPPort            string
	AdminAPIKey         string
	PushgatewayEnabled  bool
	PushgatewayAddress  string
	SheetsSpreadsheetID string
	SheetsCredentials   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		FPLBaseURL:          envOrDefault("FPL_BASE_URL", "https://www.fpl.com"),
		FPLUsername:         envOrDefaultWarn("FPL_USERNAME", ""),
		FPLPassword:         envOrDefaultWarn("FPL_PASSWORD", ""),
		FPLTimeout:          envOrDefaultDuration("FPL_TIMEOUT", 10*time.Second),
		DatabaseURL:         envOrDefaultWarn("DATABASE_URL", ""),
		RefreshInterval:     envOrDefaultDuration("REFRESH_INTERVAL", 6*time.Hour),
		HTTPPort:            envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:         envOrDefault("ADMIN_API_KEY", ""),
		PushgatewayEnabled:  envOrDefaultBool("PUSHGATEWAY_ENABLED", false),
		PushgatewayAddress:  envOrDefault("PUSHGATEWAY_ADDRESS", "localhost:9091"),
		SheetsSpreadsheetID: envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentials:   envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return b
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
