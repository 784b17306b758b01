package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog projection served to clients and consumed by the
// cart. product_id and variant_id are the vendor-platform identifiers used
// for cart URL construction.
type Product struct {
	ID              string          `json:"id"`
	ProductTitle    string          `json:"product_title"`
	Vendor          string          `json:"vendor"`
	Price           decimal.Decimal `json:"price"`
	Size            *string         `json:"size,omitempty"`
	Color           *string         `json:"color,omitempty"`
	Length          *string         `json:"length,omitempty"`
	Inseam          *string         `json:"inseam,omitempty"`
	Available       bool            `json:"available"`
	ImageURL        string          `json:"image_url"`
	ProductURL      string          `json:"product_url"`
	VariantTitle    *string         `json:"variant_title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	ProductID       string          `json:"product_id"`
	VariantID       *string         `json:"variant_id,omitempty"`
	PrimaryCategory *string         `json:"primary_category,omitempty"`
	Subcategory     *string         `json:"subcategory,omitempty"`
}

// SearchParams narrows a catalog listing. Zero values mean "no filter".
type SearchParams struct {
	Query     string
	Vendor    string
	Category  string
	Available *bool
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Sort      string
	Limit     int
	Offset    int
}

// SearchPage is a limit/offset page of catalog results.
type SearchPage struct {
	Items  []Product `json:"items"`
	Total  int64     `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitle     = "title"
)
