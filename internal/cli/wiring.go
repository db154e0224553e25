package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	cartapp "github.com/greencart/storefront/internal/cart/app"
	"github.com/greencart/storefront/internal/cart/infra/kv"
	"github.com/greencart/storefront/pkg/config"
	"github.com/greencart/storefront/pkg/logger"
)

func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(cfg config.Config, service string) *slog.Logger {
	return logger.New(logger.Options{
		Service: service,
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})
}

// openStore builds the configured durable store. The returned closer is a
// no-op for backends without resources to release.
func openStore(cfg config.Config) (cartapp.Store, func() error, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		store, err := kv.OpenSQLite(filepath.Join(cfg.DataDir, "storefront.db"))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "file":
		store, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

type cartEnv struct {
	cfg   config.Config
	log   *slog.Logger
	cart  *cartapp.Service
	close func() error
}

// newCartEnv wires just enough to run offline cart commands.
func newCartEnv(ctx context.Context, opts *RootOptions) (*cartEnv, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg, "storefront-cli")

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	return &cartEnv{
		cfg:   cfg,
		log:   log,
		cart:  cartapp.NewService(ctx, store, log),
		close: closeStore,
	}, nil
}
