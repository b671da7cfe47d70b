package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected dev environment by default, got %q", cfg.App.Env)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Fatalf("unexpected default base url %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.API.Timeout)
	}
	if cfg.Cache.UseRedis() {
		t.Fatal("memory cache should be the default backend")
	}
	if !cfg.DB.IsSQLite() {
		t.Fatalf("sqlite should be the default driver, got %q", cfg.DB.Driver)
	}
	if cfg.JWT.Expiration() != 480*time.Minute {
		t.Fatalf("unexpected jwt expiration %v", cfg.JWT.Expiration())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOCKFLOW_APP_ENV", "production")
	t.Setenv("STOCKFLOW_API_BASE_URL", "https://inventory.example.com/api")
	t.Setenv("STOCKFLOW_CACHE_BACKEND", "redis")
	t.Setenv("STOCKFLOW_DB_DRIVER", "postgres")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected production env, got %q", cfg.App.Env)
	}
	if cfg.API.BaseURL != "https://inventory.example.com/api" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if !cfg.Cache.UseRedis() {
		t.Fatal("expected redis cache backend")
	}
	if cfg.DB.IsSQLite() {
		t.Fatal("expected postgres driver")
	}
}
