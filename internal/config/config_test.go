package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatal("cache should default to enabled")
	}
	if !cfg.Methods["GET"] || len(cfg.Methods) != 1 {
		t.Fatalf("default methods = %v, want GET only", cfg.Methods)
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("default TTL = %v, want 30s", cfg.TTL)
	}
	if cfg.Prefix != "catalog" {
		t.Fatalf("default prefix = %q, want catalog", cfg.Prefix)
	}
}

func TestLoadCacheConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")

	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Fatal("CACHE_ENABLED=false not honored")
	}
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Fatalf("methods = %v, want GET and HEAD upper-cased", cfg.Methods)
	}
	if cfg.TTL != 2*time.Minute {
		t.Fatalf("TTL = %v, want 2m", cfg.TTL)
	}
}

func TestLoadRateLimitConfigClampsValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "10s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity < 1 {
		t.Fatalf("capacity = %d, want >= 1", cfg.Capacity)
	}
	if cfg.RefillTokens < 1 {
		t.Fatalf("refill tokens = %d, want >= 1", cfg.RefillTokens)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Fatalf("TTL = %v, want at least 5 refill intervals (%v)", cfg.TTL, 5*cfg.RefillInterval)
	}
}

func TestLoadRateLimitConfigBurstOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "60")
	t.Setenv("RATE_LIMIT_BURST", "200")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 200 {
		t.Fatalf("capacity = %d, want burst override 200", cfg.Capacity)
	}
}

func TestEnvInt64Default(t *testing.T) {
	if got := envInt64("COUPON_COST_TEST_UNSET", 100); got != 100 {
		t.Fatalf("envInt64 default = %d, want 100", got)
	}
	t.Setenv("COUPON_COST_TEST_SET", "250")
	if got := envInt64("COUPON_COST_TEST_SET", 100); got != 250 {
		t.Fatalf("envInt64 = %d, want 250", got)
	}
}
