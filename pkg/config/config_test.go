package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort=%d, want 8080", cfg.HTTPPort)
	}
	if cfg.StoreBackend != "sqlite" {
		t.Fatalf("StoreBackend=%q, want sqlite", cfg.StoreBackend)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
env: prod
http_port: 9090
backend_url: https://shop.example.com
store: file
seller_mode: true
catalog_refresh: 30s
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AppEnv != "prod" || cfg.HTTPPort != 9090 || cfg.StoreBackend != "file" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.SellerMode {
		t.Fatal("seller_mode not parsed")
	}
	if cfg.CatalogRefresh != Duration(30*time.Second) {
		t.Fatalf("CatalogRefresh=%v, want 30s", cfg.CatalogRefresh)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("STORE_BACKEND", "file")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 7070 {
		t.Fatalf("HTTPPort=%d, env should win", cfg.HTTPPort)
	}
	if cfg.StoreBackend != "file" {
		t.Fatalf("StoreBackend=%q, env should win", cfg.StoreBackend)
	}
}

func TestUnknownStoreBackendRejected(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown store backend")
	}
}

func TestMissingFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
