// Package token inspects access tokens on the client side. The payload
// is decoded without signature verification: the backend is the only
// authority on token validity, the client only reads the exp claim to
// decide whether a silent refresh is needed.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode returns the unverified claims of a JWT access token.
func Decode(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim of the token.
func ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := Decode(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return exp.Time, nil
}

// Valid reports whether the token carries an exp claim in the future.
// A missing or malformed token is simply not valid, never an error.
func Valid(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	exp, err := ExpiresAt(tokenString)
	if err != nil {
		return false
	}
	return exp.After(time.Now())
}
