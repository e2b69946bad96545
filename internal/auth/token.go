package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims. The identity travels in the registered
// Subject claim; issued-at and expiry are the registered timestamps.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256-signed token for identity, valid for ttl from now.
func GenerateToken(identity string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(secret)
}

// ParseToken verifies the token signature and expiry and returns the identity.
// Only HS256 is accepted; a token re-signed with "none" or any other method
// fails as invalid. Expired tokens return ErrTokenExpired, everything else
// that fails returns ErrInvalidToken.
func ParseToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	// Strict decoding rejects non-canonical base64 segments, so a token with
	// any single altered character fails even when the change only touches
	// unused trailing bits of a segment.
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
