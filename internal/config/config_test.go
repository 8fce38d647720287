package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()

	if !cfg.Enabled {
		t.Error("limiter should default to enabled")
	}
	if cfg.Capacity != 60 {
		t.Errorf("capacity: got %d, want 60", cfg.Capacity)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("refill interval: got %v, want 1s", cfg.RefillInterval)
	}
	if cfg.KeyStrategy != "user_route" {
		t.Errorf("key strategy: got %q, want user_route", cfg.KeyStrategy)
	}
}

func TestLoadRateLimitConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_CAPACITY", "10")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "250ms")

	cfg := LoadRateLimitConfig()

	if cfg.Enabled {
		t.Error("limiter should be disabled")
	}
	if cfg.Capacity != 10 {
		t.Errorf("capacity: got %d, want 10", cfg.Capacity)
	}
	if cfg.RefillInterval != 250*time.Millisecond {
		t.Errorf("refill interval: got %v, want 250ms", cfg.RefillInterval)
	}
}

func TestLoadRateLimitConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "lots")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "soon")

	cfg := LoadRateLimitConfig()

	if cfg.Capacity != 60 {
		t.Errorf("capacity: got %d, want default 60", cfg.Capacity)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("refill interval: got %v, want default 1s", cfg.RefillInterval)
	}
}

func TestLoadCacheConfig_Defaults(t *testing.T) {
	cfg := LoadCacheConfig()

	if !cfg.Enabled {
		t.Error("cache should default to enabled")
	}
	if cfg.TTL != 15*time.Second {
		t.Errorf("TTL: got %v, want 15s", cfg.TTL)
	}
	if !cfg.Methods["GET"] {
		t.Error("GET should be cacheable by default")
	}
	if cfg.Methods["POST"] {
		t.Error("POST should not be cacheable by default")
	}
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, head ,")
	if !m["GET"] || !m["HEAD"] {
		t.Errorf("methods not normalized: %v", m)
	}
	if len(m) != 2 {
		t.Errorf("method count: got %d, want 2", len(m))
	}
}
