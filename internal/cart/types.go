package cart

import (
	"github.com/shopspring/decimal"

	"github.com/simplyaboveaverage/multicart-backend/internal/catalog"
)

// Item is a catalog product plus a quantity. Quantity is always >= 1; an
// item driven to zero is removed from the cart rather than kept.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// BrandGroup is one vendor's slice of the cart.
type BrandGroup struct {
	Vendor   string          `json:"vendor"`
	Items    []Item          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Summary is the cart rollup served to the cart sidebar.
type Summary struct {
	ItemsCount int             `json:"items_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Brands     []BrandGroup    `json:"brands"`
}
