package config

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	LogLevel       string
	RoomIdleTTL    time.Duration // 0 keeps rooms until their host ends them
	SweepInterval  time.Duration
	RateLimit      float64 // client actions per second per connection, 0 = unlimited
	RateBurst      int
}

func Load() Config {
	v := viper.New()
	v.SetDefault("PORT", "4000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ROOM_IDLE_TTL", "0s")
	v.SetDefault("SWEEP_INTERVAL", "5m")
	v.SetDefault("RATE_LIMIT", "10")
	v.SetDefault("RATE_BURST", "20")
	v.AutomaticEnv()

	cfg := Config{
		Port:           getString(v, "PORT", "4000"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		AllowedOrigins: getList(v, "ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:       getString(v, "LOG_LEVEL", "info"),
		RoomIdleTTL:    getDuration(v, "ROOM_IDLE_TTL", 0),
		SweepInterval:  getDuration(v, "SWEEP_INTERVAL", 5*time.Minute),
		RateLimit:      getFloat(v, "RATE_LIMIT", 10),
		RateBurst:      getPositiveInt(v, "RATE_BURST", 20),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		cfg.Port = "4000"
	}
	return cfg
}

// An empty environment variable still overrides viper defaults, so every
// getter falls back explicitly.
func getString(v *viper.Viper, key, fallback string) string {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return fallback
}

func getList(v *viper.Viper, key string, fallback []string) []string {
	var list []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	if len(list) == 0 {
		return fallback
	}
	return list
}

func getDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getFloat(v *viper.Viper, key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil || f < 0 || math.IsNaN(f) {
		return fallback
	}
	return f
}

func getPositiveInt(v *viper.Viper, key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
