package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	cartapp "github.com/greencart/storefront/internal/cart/app"
	catalogapp "github.com/greencart/storefront/internal/catalog/app"
	sessionapp "github.com/greencart/storefront/internal/session/app"
	sessiondomain "github.com/greencart/storefront/internal/session/domain"
	"github.com/greencart/storefront/internal/session/infra/httpapi"
	"github.com/greencart/storefront/internal/web"
	"github.com/greencart/storefront/pkg/shutdown"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local storefront API",
		Long: `Run the local storefront API.

Seeds the cart from the durable store, bootstraps against the backend
(product catalog, user session, seller authorization), and serves the
cart, quote, and session endpoints for a UI on the configured port.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts)
		},
	}
}

func runServe(opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log := newLogger(cfg, "storefront")

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("store close failed", slog.Any("err", err))
		}
	}()

	clientID, err := sessionapp.EnsureClientID(ctx, store)
	if err != nil {
		log.Warn("client id not persisted", slog.Any("err", err))
	}
	api := httpapi.New(cfg.BackendURL, clientID)

	cartSvc := cartapp.NewService(ctx, store, log)
	catalogSvc := catalogapp.NewService(api, log)

	ctrl := sessionapp.NewController(
		sessionapp.Config{SellerMode: cfg.SellerMode},
		cartSvc, catalogSvc, api, api, api, log,
		sessionapp.Events{
			CartChanged: func(count int64, total decimal.Decimal) {
				log.Debug("cart changed",
					slog.Int64("count", count),
					slog.String("total", total.StringFixed(2)))
			},
			AuthChanged: func(state sessiondomain.AuthState) {
				log.Info("auth state changed", slog.String("state", state.String()))
			},
			BootstrapComplete: func() { log.Info("bootstrap complete") },
			Notice:            func(msg string) { log.Debug(msg) },
			Warning:           func(msg string) { log.Warn(msg) },
		},
	)

	// The cart stays usable while these resolve.
	go ctrl.Bootstrap(ctx)

	if cfg.CatalogRefresh > 0 {
		go refreshCatalog(ctx, catalogSvc, time.Duration(cfg.CatalogRefresh), log)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           web.NewServer(cartSvc, catalogSvc, ctrl, log).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
	return nil
}

func refreshCatalog(ctx context.Context, catalog *catalogapp.Service, every time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := catalog.Refresh(ctx); err != nil {
				log.Warn("catalog refresh failed", slog.Any("err", err))
			}
		}
	}
}
