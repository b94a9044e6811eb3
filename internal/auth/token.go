package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired inspects the bearer token's exp claim without verifying
// the signature; verification is the server's job, the client only
// wants to skip a round trip for a token it knows is dead. Opaque
// (non-JWT) tokens report false because nothing can be read from them.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}

// TokenSubject returns the sub claim, or empty for opaque tokens.
func TokenSubject(token string) string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
