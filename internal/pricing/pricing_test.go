package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/greencart/storefront/internal/cart/domain"
	catalogdomain "github.com/greencart/storefront/internal/catalog/domain"
)

type fakeCatalog map[string]catalogdomain.Product

func (f fakeCatalog) Lookup(id string) (catalogdomain.Product, bool) {
	p, ok := f[id]
	return p, ok
}

func product(id, offer string) catalogdomain.Product {
	return catalogdomain.Product{
		ID:         id,
		Name:       "product " + id,
		OfferPrice: decimal.RequireFromString(offer),
		InStock:    true,
	}
}

func TestTotalCount(t *testing.T) {
	assert.EqualValues(t, 0, TotalCount(cartdomain.Ledger{}))
	assert.EqualValues(t, 3, TotalCount(cartdomain.Ledger{"p1": 2, "p2": 1}))
}

func TestTotalAmountTruncates(t *testing.T) {
	// 2 x 9.995 + 1 x 4.001 = 23.991, floored to 23.99 (not rounded).
	catalog := fakeCatalog{
		"p1": product("p1", "9.995"),
		"p2": product("p2", "4.001"),
	}
	total := TotalAmount(cartdomain.Ledger{"p1": 2, "p2": 1}, catalog)
	assert.True(t, total.Equal(decimal.RequireFromString("23.99")), "got %s", total)
}

func TestTotalAmountTruncationBoundary(t *testing.T) {
	// 9.999 floors to 9.99; rounding would give 10.00.
	catalog := fakeCatalog{"p1": product("p1", "9.999")}
	total := TotalAmount(cartdomain.Ledger{"p1": 1}, catalog)
	assert.True(t, total.Equal(decimal.RequireFromString("9.99")), "got %s", total)
}

func TestTotalAmountMissingProductContributesZero(t *testing.T) {
	catalog := fakeCatalog{"p1": product("p1", "2.50")}
	total := TotalAmount(cartdomain.Ledger{"p1": 2, "ghost": 4}, catalog)
	assert.True(t, total.Equal(decimal.RequireFromString("5.00")), "got %s", total)
}

func TestTotalAmountEmptyCart(t *testing.T) {
	total := TotalAmount(cartdomain.Ledger{}, fakeCatalog{})
	assert.True(t, total.IsZero())
}

func TestBuildQuote(t *testing.T) {
	catalog := fakeCatalog{
		"p1": product("p1", "9.995"),
		"p2": product("p2", "4.001"),
	}
	quote := BuildQuote(cartdomain.Ledger{"p2": 1, "p1": 2, "ghost": 1}, catalog)

	require.Len(t, quote.Lines, 2, "missing products are dropped from lines")
	assert.Equal(t, "p1", quote.Lines[0].ProductID, "lines ordered by product id")
	assert.Equal(t, "p2", quote.Lines[1].ProductID)
	assert.EqualValues(t, 2, quote.Lines[0].Quantity)
	assert.True(t, quote.Lines[0].LineTotal.Equal(decimal.RequireFromString("19.99")),
		"line total kept exact: got %s", quote.Lines[0].LineTotal)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("23.99")), "got %s", quote.Total)
}

func TestBuildQuoteFlagsOutOfStock(t *testing.T) {
	p := product("p1", "1.00")
	p.InStock = false
	quote := BuildQuote(cartdomain.Ledger{"p1": 1}, fakeCatalog{"p1": p})

	require.Len(t, quote.Lines, 1)
	assert.True(t, quote.Lines[0].OutOfStock)
}
