package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "hosted-auth"}
}

func mintToken(t *testing.T, cfg config.JWTConfig, claims AccessTokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestParseAccessToken_Valid(t *testing.T) {
	cfg := testJWTConfig()
	raw := mintToken(t, cfg, AccessTokenClaims{
		Email: "shopper@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ParseAccessToken(cfg, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("expected subject user-123, got %q", claims.Subject)
	}
	if claims.Email != "shopper@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestParseAccessToken_WrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	raw := mintToken(t, cfg, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := ParseAccessToken(cfg, raw); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	raw := mintToken(t, cfg, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	if _, err := ParseAccessToken(cfg, raw); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseAccessToken_MissingSubject(t *testing.T) {
	cfg := testJWTConfig()
	raw := mintToken(t, cfg, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := ParseAccessToken(cfg, raw); err == nil {
		t.Fatal("expected missing subject to fail")
	}
}
