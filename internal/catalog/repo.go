package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/simplyaboveaverage/multicart-backend/pkg/db/models"
)

// Repository reads the hosted catalog table. The data pipeline owns writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads one product row.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Search applies the listing filters and returns one page plus the total count.
func (r *Repository) Search(ctx context.Context, params SearchParams) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(product_title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(vendor) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if vendor := strings.TrimSpace(params.Vendor); vendor != "" {
		query = query.Where("vendor = ?", vendor)
	}
	if category := strings.TrimSpace(params.Category); category != "" {
		query = query.Where("primary_category = ? OR subcategory = ?", category, category)
	}
	if params.Available != nil {
		query = query.Where("available = ?", *params.Available)
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(params.Sort))
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Vendors returns the distinct vendor names present in the catalog.
func (r *Repository) Vendors(ctx context.Context) ([]string, error) {
	var vendors []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("vendor").
		Order("vendor ASC").
		Pluck("vendor", &vendors).
		Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "price ASC, id ASC"
	case SortPriceDesc:
		return "price DESC, id ASC"
	case SortTitle:
		return "product_title ASC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}
