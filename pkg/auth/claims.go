package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims mirrors the token shape minted by the hosted auth
// service. The subject is the account identifier that keys all persisted
// client state.
type AccessTokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
