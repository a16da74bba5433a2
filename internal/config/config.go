// Package config centralises configuration parsing for the tracker service.
package config

import (
	"os"
	"strings"
	"time"
)

// Config captures runtime configuration values for the tracker service.
type Config struct {
	HTTPAddress     string
	MongoURI        string
	MongoDatabase   string
	MongoTimeout    time.Duration // Per-operation deadline for store calls.
	KafkaBrokers    []string      // Empty disables event publishing.
	EventsTopic     string
	ShutdownTimeout time.Duration
}

// Load reads environment variables into Config, applying sensible defaults
// for local dev.
func Load() Config {
	cfg := Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":3000"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "exercise_tracker"),
		MongoTimeout:    getDurationEnv("MONGO_TIMEOUT", 10*time.Second),
		EventsTopic:     getEnv("EVENTS_TOPIC", "exercise_events"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	cfg.KafkaBrokers = splitAndTrim(getEnv("KAFKA_BROKERS", ""))
	return cfg
}

// EventsEnabled reports whether a Kafka publisher should be wired.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
