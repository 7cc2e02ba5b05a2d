package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected default env dev, got %q", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB URL by default, got %q", cfg.DBURL)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected default JWT TTL 24h, got %s", cfg.JWTTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected default CORS origins [*], got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ProdRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing JWT_SECRET in prod")
	}

	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("ACCESS_CODE_SALT", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing ACCESS_CODE_SALT in prod")
	}

	t.Setenv("ACCESS_CODE_SALT", "prod-salt")
	if _, err := Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", "qa")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}

	t.Setenv("APP_ENV", "dev")
	t.Setenv("CACHE_TTL", "-1s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative CACHE_TTL")
	}

	t.Setenv("CACHE_TTL", "60s")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing UPTRACE_DSN")
	}
}
