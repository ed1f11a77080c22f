// Package jwttoken reads the claims of access tokens issued by the compliance
// API. The console never holds the signing key, so nothing here verifies a
// signature; the backend stays the authority on validity.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "rbconsole/pkg/domain-errors"
)

// ErrOpaqueToken is returned for tokens that are not JWTs.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Info is what the console shows about the stored token.
type Info struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed at now.
// Tokens without an exp claim never expire locally.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Remaining is the time left before expiry, zero if expired or unknown.
func (i Info) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() || !now.Before(i.ExpiresAt) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}

// Inspect decodes the registered claims of tokenString without verifying it.
func Inspect(tokenString string) (Info, error) {
	if tokenString == "" {
		return Info{}, dErrors.New(dErrors.CodeUnauthorized, "no token")
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return Info{}, ErrOpaqueToken
	}

	info := Info{Subject: claims.Subject, Issuer: claims.Issuer}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info, nil
}
