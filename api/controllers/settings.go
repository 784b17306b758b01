package controllers

import (
	"net/http"

	"github.com/simplyaboveaverage/multicart-backend/api/responses"
	"github.com/simplyaboveaverage/multicart-backend/api/validators"
	"github.com/simplyaboveaverage/multicart-backend/internal/settings"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
)

type updateSettingsPayload struct {
	ProductsPerPage *int  `json:"products_per_page" validate:"omitempty,gt=0"`
	HasSeenWelcome  *bool `json:"has_seen_welcome"`
}

// SettingsGet returns the account's presentation preferences.
func SettingsGet(store *settings.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings store unavailable"))
			return
		}

		owner, err := ownerFrom(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		prefs, err := store.Get(ctx, owner)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}

// SettingsUpdate applies a partial update; absent fields are untouched.
func SettingsUpdate(store *settings.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings store unavailable"))
			return
		}

		owner, err := ownerFrom(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateSettingsPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if payload.ProductsPerPage == nil && payload.HasSeenWelcome == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		if payload.ProductsPerPage != nil {
			if err := store.SetProductsPerPage(ctx, owner, *payload.ProductsPerPage); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}
		if payload.HasSeenWelcome != nil {
			if err := store.SetHasSeenWelcome(ctx, owner, *payload.HasSeenWelcome); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		prefs, err := store.Get(ctx, owner)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}
