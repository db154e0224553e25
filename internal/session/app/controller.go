package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/greencart/storefront/internal/cart/app"
	catalogapp "github.com/greencart/storefront/internal/catalog/app"
	"github.com/greencart/storefront/internal/pricing"
	"github.com/greencart/storefront/internal/session/domain"
)

type Config struct {
	// SellerMode enables the seller-authorization check during bootstrap.
	// It corresponds to running the administrative surface of the store.
	SellerMode bool
}

// Controller owns session state and drives reconciliation between the local
// cart and the backend. It is the single writer of auth state; the cart and
// catalog services stay usable before and during bootstrap.
type Controller struct {
	cfg     Config
	cart    *cartapp.Service
	catalog *catalogapp.Service
	users   UserFetcher
	seller  SellerAuth
	logouts LogoutClient
	log     *slog.Logger
	events  Events

	mu       sync.Mutex
	state    domain.AuthState
	user     domain.User
	sellerOK bool
	// gen is bumped on logout; async results carrying an older gen are
	// discarded instead of applied.
	gen uint64
}

func NewController(
	cfg Config,
	cart *cartapp.Service,
	catalog *catalogapp.Service,
	users UserFetcher,
	seller SellerAuth,
	logouts LogoutClient,
	log *slog.Logger,
	events Events,
) *Controller {
	c := &Controller{
		cfg:     cfg,
		cart:    cart,
		catalog: catalog,
		users:   users,
		seller:  seller,
		logouts: logouts,
		log:     log,
		events:  events,
		state:   domain.Uninitialized,
	}
	cart.SetHooks(cartapp.Hooks{
		Changed: c.emitCartChanged,
		Notice:  c.notice,
	})
	return c
}

// Bootstrap runs the one-time startup fetches: catalog, current user, and,
// in seller mode, seller authorization. The fetches run in parallel and fail
// independently; a second call is a no-op whether the first is still in
// flight or already done.
func (c *Controller) Bootstrap(ctx context.Context) {
	c.mu.Lock()
	if c.state != domain.Uninitialized {
		c.mu.Unlock()
		return
	}
	c.state = domain.Bootstrapping
	gen := c.gen
	c.mu.Unlock()

	// Every task reports its own failure and returns nil, so one failed
	// fetch never cancels the siblings.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.catalog.Refresh(gctx); err != nil {
			c.log.Warn("catalog fetch failed", slog.Any("err", err))
			c.warn("Could not load products")
		}
		return nil
	})
	g.Go(func() error {
		c.resolveUser(gctx, gen)
		return nil
	})
	if c.cfg.SellerMode {
		g.Go(func() error {
			ok, err := c.seller.SellerAuthorized(gctx)
			if err != nil {
				c.log.Warn("seller auth check failed", slog.Any("err", err))
				ok = false
			}
			c.mu.Lock()
			c.sellerOK = ok
			c.mu.Unlock()
			return nil
		})
	}
	g.Wait()

	c.mu.Lock()
	settled := c.state == domain.Bootstrapping
	if settled {
		c.state = domain.Guest
	}
	c.mu.Unlock()

	if settled {
		c.emitAuthChanged(domain.Guest)
	}
	if c.events.BootstrapComplete != nil {
		c.events.BootstrapComplete()
	}
}

// resolveUser applies the outcome of the user-auth fetch. A server cart is
// merged against the ledger as it stands when the response arrives, so local
// mutations made during the fetch are never lost.
func (c *Controller) resolveUser(ctx context.Context, gen uint64) {
	status, err := c.users.CurrentUser(ctx)
	if err != nil {
		c.log.Warn("user fetch failed", slog.Any("err", err))
		c.warn("Could not reach the store, continuing as guest")
		c.setState(gen, domain.Guest, domain.User{})
		return
	}
	if !status.Authenticated {
		c.setState(gen, domain.Guest, domain.User{})
		return
	}

	if !c.setState(gen, domain.Authenticated, status.User) {
		return
	}
	if len(status.User.Cart) > 0 {
		// The guard runs inside the cart mutex, so a logout landing after
		// the auth transition but before the merge still discards the
		// server cart instead of resurrecting it.
		c.cart.MergeServer(ctx, status.User.Cart, func() bool {
			return c.generationCurrent(gen)
		})
	}
}

func (c *Controller) generationCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.gen
}

// setState transitions auth state unless the result is stale. Reports
// whether the transition was applied.
func (c *Controller) setState(gen uint64, state domain.AuthState, user domain.User) bool {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.log.Debug("discarding stale auth result", slog.String("state", state.String()))
		return false
	}
	changed := c.state != state
	c.state = state
	c.user = user
	c.mu.Unlock()

	if changed {
		c.emitAuthChanged(state)
	}
	return true
}

// Logout asks the backend to end the session, then clears local state. The
// local transition happens even if the backend call fails; the generation
// bump makes any in-flight fetch result stale.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.logouts.Logout(ctx); err != nil {
		c.log.Warn("logout request failed", slog.Any("err", err))
		c.warn("Logout may not have reached the server")
	}

	c.mu.Lock()
	c.gen++
	changed := c.state != domain.Guest
	c.state = domain.Guest
	c.user = domain.User{}
	c.mu.Unlock()

	c.cart.Clear(ctx)
	if changed {
		c.emitAuthChanged(domain.Guest)
	}
}

// State returns the current auth state.
func (c *Controller) State() domain.AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// User returns the authenticated user, if any.
func (c *Controller) User() (domain.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, c.state == domain.Authenticated
}

// SellerAuthorized reports the result of the seller-auth check.
func (c *Controller) SellerAuthorized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sellerOK
}

// Totals returns the current derived cart values.
func (c *Controller) Totals() (int64, decimal.Decimal) {
	items := c.cart.Snapshot()
	return pricing.TotalCount(items), pricing.TotalAmount(items, c.catalog)
}

func (c *Controller) emitCartChanged() {
	if c.events.CartChanged == nil {
		return
	}
	count, total := c.Totals()
	c.events.CartChanged(count, total)
}

func (c *Controller) emitAuthChanged(state domain.AuthState) {
	if c.events.AuthChanged != nil {
		c.events.AuthChanged(state)
	}
}

func (c *Controller) notice(msg string) {
	if c.events.Notice != nil {
		c.events.Notice(msg)
	}
}

func (c *Controller) warn(msg string) {
	if c.events.Warning != nil {
		c.events.Warning(msg)
	}
}
