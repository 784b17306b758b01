package controllers

import (
	"net/http"

	"github.com/simplyaboveaverage/multicart-backend/api/responses"
	"github.com/simplyaboveaverage/multicart-backend/api/validators"
	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
	"github.com/simplyaboveaverage/multicart-backend/internal/checkouturl"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
)

type checkoutLinkPayload struct {
	Vendor string `json:"vendor" validate:"required"`
}

// CheckoutLink builds a direct checkout URL for one vendor's slice of the
// cart via the simpler checkout-path generator.
func CheckoutLink(store *cart.Store, gen *checkouturl.Generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil || gen == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout generator unavailable"))
			return
		}

		owner, err := ownerFrom(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload checkoutLinkPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := store.Items(ctx, owner)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"vendor": payload.Vendor,
			"url":    gen.GenerateCheckoutURL(ctx, payload.Vendor, items),
		})
	}
}
