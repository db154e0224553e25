package app

import (
	"context"

	"github.com/greencart/storefront/internal/catalog/domain"
)

// Fetcher supplies the full product listing from the backend.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
