package authclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessTokenTTL returns the cookie lifetime for an access token. Identity
// services issue JWTs that carry their own expiry; the cookie must not
// outlive the token, so the configured TTL is clamped to the `exp` claim
// when one can be read. The parse is unverified on purpose: validity is
// enforced at the API boundary, this is TTL bookkeeping only. Opaque tokens
// get the fallback unchanged.
func accessTokenTTL(token string, fallback time.Duration, now func() time.Time) time.Duration {
	if token == "" {
		return fallback
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}

	ttl := exp.Time.Sub(now())
	if ttl <= 0 || ttl > fallback {
		return fallback
	}
	return ttl
}
