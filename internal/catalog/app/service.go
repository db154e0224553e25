package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/greencart/storefront/internal/catalog/domain"
)

// Service holds the current catalog snapshot. The snapshot is replaced
// wholesale on a successful refresh; a failed refresh leaves the previous
// snapshot in place, so consumers keep working with stale data.
type Service struct {
	fetcher Fetcher
	log     *slog.Logger

	mu       sync.RWMutex
	products []domain.Product
	byID     map[string]domain.Product
}

func NewService(fetcher Fetcher, log *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		log:     log,
		byID:    make(map[string]domain.Product),
	}
}

// Refresh fetches the product listing and swaps the snapshot in. On error
// the snapshot is unchanged.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.fetcher.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.mu.Unlock()

	s.log.Debug("catalog refreshed", slog.Int("products", len(products)))
	return nil
}

// Products returns a copy of the current snapshot.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Lookup finds a product by id in the current snapshot.
func (s *Service) Lookup(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}
