package domain

import "github.com/shopspring/decimal"

// Product is a read-only catalog entry. Price is the list price, OfferPrice
// the price actually charged; both are non-negative decimals.
type Product struct {
	ID          string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	OfferPrice  decimal.Decimal
	InStock     bool
}
