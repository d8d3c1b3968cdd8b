package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of a bearer token the client displays.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// HasExpiry reports whether the token carried an exp claim.
func (c Claims) HasExpiry() bool {
	return !c.ExpiresAt.IsZero()
}

// Expired reports whether the token's exp claim lies before now.
func (c Claims) Expired(now time.Time) bool {
	return c.HasExpiry() && now.After(c.ExpiresAt)
}

// TokenClaims decodes token without verifying its signature; the client has
// no key and only uses the result for display. Opaque tokens return an error.
func TokenClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, errors.New("empty token")
	}

	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, err
	}

	c := Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
