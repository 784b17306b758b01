package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/simplyaboveaverage/multicart-backend/api/responses"
	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
	"github.com/simplyaboveaverage/multicart-backend/internal/carturl"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
)

// VendorLink is one vendor's best-guess cart URL.
type VendorLink struct {
	Vendor     string `json:"vendor"`
	URL        string `json:"url"`
	ItemsCount int    `json:"items_count"`
}

// CartLinks returns one pre-filled cart URL per vendor in the cart, in
// first-seen vendor order.
func CartLinks(store *cart.Store, gen *carturl.Generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil || gen == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart link generator unavailable"))
			return
		}

		owner, err := ownerFrom(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		brands, err := store.UniqueBrands(ctx, owner)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		links := make([]VendorLink, 0, len(brands))
		for _, vendor := range brands {
			items, err := store.BrandItems(ctx, owner, vendor)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			links = append(links, VendorLink{
				Vendor:     vendor,
				URL:        gen.GenerateCartURL(ctx, owner, vendor, items),
				ItemsCount: len(items),
			})
		}

		responses.WriteSuccess(w, map[string]any{"links": links})
	}
}

// CartLinkFormats returns every candidate cart URL format for one vendor's
// slice of the cart, keyed by format name.
func CartLinkFormats(store *cart.Store, gen *carturl.Generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil || gen == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart link generator unavailable"))
			return
		}

		owner, err := ownerFrom(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		vendor, err := vendorParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := store.BrandItems(ctx, owner, vendor)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"vendor":  vendor,
			"formats": gen.GenerateAllCartURLs(ctx, vendor, items),
		})
	}
}

func vendorParam(r *http.Request) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "vendor"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "vendor is required")
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return raw, nil
}
