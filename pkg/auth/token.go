package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
)

// ParseAccessToken verifies a bearer token issued by the hosted auth service
// and returns its typed claims.
func ParseAccessToken(cfg config.JWTConfig, token string) (*AccessTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	claims := &AccessTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parsing access token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("access token is invalid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("access token missing subject")
	}
	return claims, nil
}
