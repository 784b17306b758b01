package controllers

import (
	"net/http"

	"github.com/simplyaboveaverage/multicart-backend/api/responses"
	"github.com/simplyaboveaverage/multicart-backend/api/validators"
	"github.com/simplyaboveaverage/multicart-backend/internal/vendorformats"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
)

type saveFormatPayload struct {
	Format string `json:"format" validate:"required"`
}

// VendorFormatsSave stores the preferred cart-link format for a vendor.
func VendorFormatsSave(store *vendorformats.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor format store unavailable"))
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

		var payload saveFormatPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := store.Save(ctx, owner, vendor, payload.Format); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"saved": true})
	}
}

// VendorFormatsList returns the account's saved format preferences.
func VendorFormatsList(store *vendorformats.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor format store unavailable"))
			return
		}

		owner, err := ownerFrom(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		formats, err := store.All(ctx, owner)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"formats": formats})
	}
}
