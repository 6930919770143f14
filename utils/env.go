package utils

import (
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns the trimmed ENV value or the fallback default.
func EnvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// EnvDuration parses an ENV value like "5m" or "24h", falling back on def.
func EnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
