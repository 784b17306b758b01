package controllers

import (
	"context"

	"github.com/simplyaboveaverage/multicart-backend/api/middleware"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
)

// ownerFrom pulls the state-owner key seeded by the auth middleware.
func ownerFrom(ctx context.Context) (string, error) {
	owner := middleware.UserIDFromContext(ctx)
	if owner == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing account context")
	}
	return owner, nil
}
