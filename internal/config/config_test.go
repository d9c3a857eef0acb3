package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FPL_BASE_URL", "FPL_TIMEOUT", "DATABASE_URL", "HTTP_PORT", "REFRESH_INTERVAL", "PUSHGATEWAY_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.FPLBaseURL != "https://www.fpl.com" {
		t.Errorf("FPLBaseURL = %q, want default", cfg.FPLBaseURL)
	}
	if cfg.FPLTimeout != 10*time.Second {
		t.Errorf("FPLTimeout = %v, want 10s", cfg.FPLTimeout)
	}
	if cfg.RefreshInterval != 6*time.Hour {
		t.Errorf("RefreshInterval = %v, want 6h", cfg.RefreshInterval)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.PushgatewayEnabled {
		t.Error("PushgatewayEnabled should default to false")
	}
	if cfg.PushgatewayAddress != "localhost:9091" {
		t.Errorf("PushgatewayAddress = %q, want default", cfg.PushgatewayAddress)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FPL_BASE_URL", "https://staging.fpl.example.com")
	t.Setenv("FPL_TIMEOUT", "30s")
	t.Setenv("DATABASE_URL", "postgres://localhost/testdb")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PUSHGATEWAY_ENABLED", "true")

	cfg := Load()

	if cfg.FPLBaseURL != "https://staging.fpl.example.com" {
		t.Errorf("FPLBaseURL = %q, want override", cfg.FPLBaseURL)
	}
	if cfg.FPLTimeout != 30*time.Second {
		t.Errorf("FPLTimeout = %v, want 30s", cfg.FPLTimeout)
	}
	if cfg.DatabaseURL != "postgres://localhost/testdb" {
		t.Errorf("DatabaseURL = %q, want override", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if !cfg.PushgatewayEnabled {
		t.Error("PushgatewayEnabled should be true")
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("FPL_TIMEOUT", "not-a-duration")
	t.Setenv("PUSHGATEWAY_ENABLED", "maybe")

	cfg := Load()

	if cfg.FPLTimeout != 10*time.Second {
		t.Errorf("FPLTimeout = %v, want default 10s on invalid input", cfg.FPLTimeout)
	}
	if cfg.PushgatewayEnabled {
		t.Error("PushgatewayEnabled should fall back to false on invalid input")
	}
}
