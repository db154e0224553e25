package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	cartdomain "github.com/greencart/storefront/internal/cart/domain"
	catalogdomain "github.com/greencart/storefront/internal/catalog/domain"
)

// CatalogLookup resolves a product id against the current catalog snapshot.
type CatalogLookup interface {
	Lookup(id string) (catalogdomain.Product, bool)
}

// Line is one priced cart entry.
type Line struct {
	ProductID  string
	Name       string
	Quantity   int64
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
	OutOfStock bool
}

// Quote is the priced view of a whole cart.
type Quote struct {
	Lines []Line
	Total decimal.Decimal
}

// TotalCount returns the number of items in the cart.
func TotalCount(items cartdomain.Ledger) int64 {
	return items.Count()
}

// TotalAmount prices the cart against the catalog at offer prices. Items
// missing from the catalog contribute zero. The result is truncated, not
// rounded, to two decimal places.
func TotalAmount(items cartdomain.Ledger, catalog CatalogLookup) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range items {
		product, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		total = total.Add(product.OfferPrice.Mul(decimal.NewFromInt(qty)))
	}
	return total.Truncate(2)
}

// BuildQuote prices each cart entry individually. Items missing from the
// catalog are dropped from the lines; the total matches TotalAmount. Lines
// are ordered by product id so output is stable.
func BuildQuote(items cartdomain.Ledger, catalog CatalogLookup) Quote {
	lines := make([]Line, 0, len(items))
	total := decimal.Zero

	for id, qty := range items {
		product, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		lineTotal := product.OfferPrice.Mul(decimal.NewFromInt(qty))
		lines = append(lines, Line{
			ProductID:  id,
			Name:       product.Name,
			Quantity:   qty,
			UnitPrice:  product.OfferPrice,
			LineTotal:  lineTotal,
			OutOfStock: !product.InStock,
		})
		total = total.Add(lineTotal)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	return Quote{Lines: lines, Total: total.Truncate(2)}
}
