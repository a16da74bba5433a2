package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddress != ":3000" {
		t.Fatalf("unexpected default address %q", cfg.HTTPAddress)
	}
	if cfg.MongoDatabase != "exercise_tracker" {
		t.Fatalf("unexpected default database %q", cfg.MongoDatabase)
	}
	if cfg.MongoTimeout != 10*time.Second {
		t.Fatalf("unexpected default timeout %s", cfg.MongoTimeout)
	}
	if cfg.EventsEnabled() {
		t.Fatal("events should be disabled without brokers")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":8081")
	t.Setenv("MONGO_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")

	cfg := Load()

	if cfg.HTTPAddress != ":8081" {
		t.Fatalf("override ignored: %q", cfg.HTTPAddress)
	}
	if cfg.MongoTimeout != 3*time.Second {
		t.Fatalf("override ignored: %s", cfg.MongoTimeout)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if !cfg.EventsEnabled() {
		t.Fatal("events should be enabled with brokers configured")
	}
}

func TestLoadIgnoresMalformedDuration(t *testing.T) {
	t.Setenv("MONGO_TIMEOUT", "soon")

	cfg := Load()
	if cfg.MongoTimeout != 10*time.Second {
		t.Fatalf("malformed duration should fall back, got %s", cfg.MongoTimeout)
	}
}
