package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog row. The scraping pipeline owns writes; this service
// only reads. product_id/variant_id are the vendor-platform identifiers used
// for cart URL construction, distinct from the row id.
type Product struct {
	ID              string          `gorm:"column:id;primaryKey"`
	ProductTitle    string          `gorm:"column:product_title;not null"`
	Vendor          string          `gorm:"column:vendor;not null;index"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Size            *string         `gorm:"column:size"`
	Color           *string         `gorm:"column:color"`
	Length          *string         `gorm:"column:length"`
	Inseam          *string         `gorm:"column:inseam"`
	Available       bool            `gorm:"column:available;not null;default:true"`
	ImageURL        string          `gorm:"column:image_url"`
	ProductURL      string          `gorm:"column:product_url"`
	VariantTitle    *string         `gorm:"column:variant_title"`
	Description     *string         `gorm:"column:description"`
	ProductID       string          `gorm:"column:product_id"`
	VariantID       *string         `gorm:"column:variant_id"`
	PrimaryCategory *string         `gorm:"column:primary_category;index"`
	Subcategory     *string         `gorm:"column:subcategory"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

// TableName pins the table the data pipeline writes into.
func (Product) TableName() string {
	return "products"
}
