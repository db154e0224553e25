package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/greencart/storefront/internal/cart/domain"
)

// StorageKey is the fixed key under which the serialized ledger is stored.
const StorageKey = "cartItems"

var ErrInvalidQuantity = errors.New("invalid quantity")

// Service owns the in-memory cart ledger. Every mutation is written through
// to the store before the call returns; a failed write is logged and
// swallowed, leaving the in-memory ledger authoritative for the session.
type Service struct {
	store Store
	log   *slog.Logger
	hooks Hooks

	mu    sync.Mutex
	items domain.Ledger
}

// NewService seeds the ledger from the store. The persisted record is read
// exactly once, here; absent or corrupt data yields an empty ledger.
func NewService(ctx context.Context, store Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
		items: loadLedger(ctx, store, log),
	}
}

// SetHooks installs mutation callbacks. Call before handing the service to
// concurrent consumers.
func (s *Service) SetHooks(h Hooks) {
	s.hooks = h
}

// Add increments the quantity for id by one, starting from zero for an
// unknown id. Catalog membership is not checked here.
func (s *Service) Add(ctx context.Context, id string) {
	s.mu.Lock()
	s.items[id]++
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed()
	s.notice("Added to cart")
}

// SetQuantity sets the quantity for id directly. A quantity of zero or less
// removes the entry entirely, keeping the no-zero-entries invariant.
func (s *Service) SetQuantity(ctx context.Context, id string, qty int64) {
	s.mu.Lock()
	if qty <= 0 {
		delete(s.items, id)
	} else {
		s.items[id] = qty
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed()
	s.notice("Cart updated")
}

// Remove decrements the quantity for id by one, deleting the entry when it
// reaches zero. Removing an absent id is a no-op.
func (s *Service) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	if _, ok := s.items[id]; !ok {
		s.mu.Unlock()
		return
	}
	s.items[id]--
	if s.items[id] <= 0 {
		delete(s.items, id)
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed()
	s.notice("Removed from cart")
}

// Clear empties the ledger. Used on logout.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = domain.Ledger{}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed()
}

// MergeServer folds a server-held cart into the current ledger: server
// quantities win on collision, local-only items survive. The merge runs
// against the ledger as it is now, not a snapshot captured earlier, so local
// mutations made while the server cart was in flight are kept.
//
// A non-nil allow guard is evaluated under the ledger mutex; when it reports
// false the merge is dropped without touching the ledger. Callers use it to
// discard a server cart that became stale while in flight.
func (s *Service) MergeServer(ctx context.Context, server domain.Ledger, allow func() bool) {
	if len(server) == 0 {
		return
	}
	s.mu.Lock()
	if allow != nil && !allow() {
		s.mu.Unlock()
		return
	}
	s.items = domain.Merge(s.items, server)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed()
}

// Count returns the sum of all quantities.
func (s *Service) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Count()
}

// Snapshot returns a copy of the current ledger.
func (s *Service) Snapshot() domain.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}

func (s *Service) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.log.Warn("cart serialize failed", slog.Any("err", err))
		return
	}
	if err := s.store.Put(ctx, StorageKey, raw); err != nil {
		s.log.Warn("cart write-back failed, keeping in-memory state", slog.Any("err", err))
	}
}

func (s *Service) changed() {
	if s.hooks.Changed != nil {
		s.hooks.Changed()
	}
}

func (s *Service) notice(msg string) {
	if s.hooks.Notice != nil {
		s.hooks.Notice(msg)
	}
}

func loadLedger(ctx context.Context, store Store, log *slog.Logger) domain.Ledger {
	raw, found, err := store.Get(ctx, StorageKey)
	if err != nil {
		log.Warn("cart record unreadable, starting empty", slog.Any("err", err))
		return domain.Ledger{}
	}
	if !found {
		return domain.Ledger{}
	}

	var rec map[string]int64
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Warn("cart record corrupt, starting empty", slog.Any("err", err))
		return domain.Ledger{}
	}

	ledger := make(domain.Ledger, len(rec))
	for id, qty := range rec {
		if qty > 0 {
			ledger[id] = qty
		}
	}
	return ledger
}

// ParseQuantity validates raw user input as a cart quantity. Non-numeric or
// out-of-range input is rejected with ErrInvalidQuantity; negative values are
// accepted and treated by SetQuantity as removal.
func ParseQuantity(raw string) (int64, error) {
	qty, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	return qty, nil
}

// QuantityFromFloat converts a JSON number into a cart quantity. Fractional
// and non-finite values are rejected with ErrInvalidQuantity.
func QuantityFromFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrInvalidQuantity
	}
	// math.MaxInt64 rounds up to 2^63 as a float64, so the bound must be
	// exclusive or 2^63 itself would overflow the conversion.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, ErrInvalidQuantity
	}
	return int64(f), nil
}
