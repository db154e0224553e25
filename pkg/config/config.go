package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv   string `yaml:"env"`
	LogLevel string `yaml:"log_level"`

	HTTPPort int `yaml:"http_port"`

	// BackendURL is the storefront API the client syncs against.
	BackendURL string `yaml:"backend_url"`

	// DataDir holds the durable client-side store.
	DataDir string `yaml:"data_dir"`
	// StoreBackend selects the store implementation: "sqlite" or "file".
	StoreBackend string `yaml:"store"`

	// SellerMode enables the seller-authorization check at bootstrap.
	SellerMode bool `yaml:"seller_mode"`

	// CatalogRefresh is the interval between catalog re-fetches. Zero
	// disables periodic refresh.
	CatalogRefresh Duration `yaml:"catalog_refresh"`
}

// Duration lets YAML carry "30s"-style values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func defaults() Config {
	return Config{
		AppEnv:         "dev",
		LogLevel:       "info",
		HTTPPort:       8080,
		BackendURL:     "http://localhost:4000",
		DataDir:        ".storefront",
		StoreBackend:   "sqlite",
		CatalogRefresh: Duration(5 * time.Minute),
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, in that order of precedence (env wins).
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.BackendURL = getEnv("BACKEND_URL", cfg.BackendURL)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.StoreBackend = getEnv("STORE_BACKEND", cfg.StoreBackend)
	cfg.SellerMode = getEnvBool("SELLER_MODE", cfg.SellerMode)

	if cfg.StoreBackend != "sqlite" && cfg.StoreBackend != "file" {
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
