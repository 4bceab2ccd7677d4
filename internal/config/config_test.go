package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ROOM_IDLE_TTL", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("RATE_BURST", "")

	cfg := Load()

	if cfg.Port != "4000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "4000")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.RoomIdleTTL != 0 {
		t.Errorf("RoomIdleTTL = %v, want 0", cfg.RoomIdleTTL)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("SweepInterval = %v, want 5m", cfg.SweepInterval)
	}
	if cfg.RateLimit != 10 || cfg.RateBurst != 20 {
		t.Errorf("rate = %v/%d, want 10/20", cfg.RateLimit, cfg.RateBurst)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://localhost/ramudu")
	t.Setenv("ALLOWED_ORIGINS", "localhost:3000, 10.0.0.5:3000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ROOM_IDLE_TTL", "2h")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("RATE_BURST", "5")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.DatabaseURL != "postgres://localhost/ramudu" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "postgres://localhost/ramudu")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "10.0.0.5:3000" {
		t.Errorf("AllowedOrigins = %v, want two trimmed entries", cfg.AllowedOrigins)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.RoomIdleTTL != 2*time.Hour {
		t.Errorf("RoomIdleTTL = %v, want 2h", cfg.RoomIdleTTL)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("SweepInterval = %v, want 30s", cfg.SweepInterval)
	}
	if cfg.RateLimit != 2.5 || cfg.RateBurst != 5 {
		t.Errorf("rate = %v/%d, want 2.5/5", cfg.RateLimit, cfg.RateBurst)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("PORT", "abc")
	t.Setenv("ROOM_IDLE_TTL", "soon")
	t.Setenv("SWEEP_INTERVAL", "-1m")
	t.Setenv("RATE_LIMIT", "fast")

	cfg := Load()

	if cfg.Port != "4000" {
		t.Errorf("Port = %q, want %q (fallback)", cfg.Port, "4000")
	}
	if cfg.RoomIdleTTL != 0 {
		t.Errorf("RoomIdleTTL = %v, want 0 (fallback)", cfg.RoomIdleTTL)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("SweepInterval = %v, want 5m (fallback)", cfg.SweepInterval)
	}
	if cfg.RateLimit != 10 {
		t.Errorf("RateLimit = %v, want 10 (fallback)", cfg.RateLimit)
	}
}

func TestLoad_ZeroRateLimitDisablesLimiting(t *testing.T) {
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("RATE_BURST", "0")

	cfg := Load()
	if cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %v, want 0 (unlimited)", cfg.RateLimit)
	}
	if cfg.RateBurst != 20 {
		t.Errorf("RateBurst = %d, want 20 (fallback)", cfg.RateBurst)
	}
}
