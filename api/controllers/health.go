package controllers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/simplyaboveaverage/multicart-backend/api/responses"
	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
)

// ReadinessChecks maps a dependency name to its ping.
type ReadinessChecks map[string]func(context.Context) error

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Multicart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and aggregates the failures, so one
// response names everything that is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ReadinessChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Multicart-Env", cfg.App.Env)

		var errs error
		for name, ping := range checks {
			if err := ping(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
		if errs != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
