package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/simplyaboveaverage/multicart-backend/api/responses"
	"github.com/simplyaboveaverage/multicart-backend/internal/catalog"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
)

// ProductsList serves the catalog search.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		params, err := searchParamsFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.Search(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ProductsGet serves a single product by id.
func ProductsGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		product, err := svc.GetProduct(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductsVendors lists distinct vendor names for the filter sidebar.
func ProductsVendors(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		vendors, err := svc.Vendors(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string][]string{"vendors": vendors})
	}
}

func searchParamsFromQuery(r *http.Request) (catalog.SearchParams, error) {
	q := r.URL.Query()
	params := catalog.SearchParams{
		Query:    strings.TrimSpace(q.Get("q")),
		Vendor:   strings.TrimSpace(q.Get("vendor")),
		Category: strings.TrimSpace(q.Get("category")),
		Sort:     strings.TrimSpace(q.Get("sort")),
	}

	if raw := strings.TrimSpace(q.Get("available")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return catalog.SearchParams{}, pkgerrors.New(pkgerrors.CodeValidation, "available must be a boolean")
		}
		params.Available = &value
	}

	if raw := strings.TrimSpace(q.Get("min_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.SearchParams{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price must be a number")
		}
		params.MinPrice = &value
	}
	if raw := strings.TrimSpace(q.Get("max_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.SearchParams{}, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be a number")
		}
		params.MaxPrice = &value
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			return catalog.SearchParams{}, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer")
		}
		params.Limit = value
	}
	if raw := strings.TrimSpace(q.Get("offset")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return catalog.SearchParams{}, pkgerrors.New(pkgerrors.CodeValidation, "offset must be a non-negative integer")
		}
		params.Offset = value
	}

	return params, nil
}
