package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
	"github.com/simplyaboveaverage/multicart-backend/pkg/db/models"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo *Repository
	Cfg  config.CatalogConfig
}

// Service exposes read-only catalog browsing.
type Service interface {
	Search(ctx context.Context, params SearchParams) (SearchPage, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	Vendors(ctx context.Context) ([]string, error)
}

type service struct {
	repo *Repository
	cfg  config.CatalogConfig
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: params.Repo, cfg: params.Cfg}, nil
}

// Search normalizes paging and runs the catalog query.
func (s *service) Search(ctx context.Context, params SearchParams) (SearchPage, error) {
	if params.Limit <= 0 {
		params.Limit = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && params.Limit > s.cfg.MaxPageSize {
		params.Limit = s.cfg.MaxPageSize
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.MinPrice != nil && params.MaxPrice != nil && params.MinPrice.GreaterThan(*params.MaxPrice) {
		return SearchPage{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price must not exceed max_price")
	}

	rows, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return SearchPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search catalog")
	}

	items := make([]Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, fromModel(row))
	}
	return SearchPage{Items: items, Total: total, Limit: params.Limit, Offset: params.Offset}, nil
}

// GetProduct loads a single product.
func (s *service) GetProduct(ctx context.Context, id string) (Product, error) {
	if id == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return fromModel(*row), nil
}

// Vendors lists distinct vendor names.
func (s *service) Vendors(ctx context.Context) ([]string, error) {
	vendors, err := s.repo.Vendors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	return vendors, nil
}

func fromModel(row models.Product) Product {
	return Product{
		ID:              row.ID,
		ProductTitle:    row.ProductTitle,
		Vendor:          row.Vendor,
		Price:           row.Price,
		Size:            row.Size,
		Color:           row.Color,
		Length:          row.Length,
		Inseam:          row.Inseam,
		Available:       row.Available,
		ImageURL:        row.ImageURL,
		ProductURL:      row.ProductURL,
		VariantTitle:    row.VariantTitle,
		Description:     row.Description,
		ProductID:       row.ProductID,
		VariantID:       row.VariantID,
		PrimaryCategory: row.PrimaryCategory,
		Subcategory:     row.Subcategory,
	}
}
