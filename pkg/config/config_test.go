package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8443" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("unexpected session ttl: %s", cfg.SessionTTL)
	}
	if cfg.OtelProb != 1.0 {
		t.Fatalf("unexpected probability: %v", cfg.OtelProb)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SERVICE_NAME", "cartflow-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("env override ignored: %s", cfg.HTTPAddr)
	}
	if cfg.ServiceName != "cartflow-test" {
		t.Fatalf("env override ignored: %s", cfg.ServiceName)
	}
}
