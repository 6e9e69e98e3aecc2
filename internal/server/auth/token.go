// Package auth provides the cryptographic primitives of the server:
// signed session tokens and password hashing. Both are stateless; session
// liveness is tracked by the sessions repository, not here.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed token payload: registered claims plus the user
// identity and the access class the token was minted for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Access string
}

// TokenCodec mints and verifies HS256-signed session tokens with a single
// process-wide secret. Verification is deterministic for a given token and
// secret; minting is not (it embeds the expiry timestamp).
type TokenCodec struct {
	secret   []byte
	validity time.Duration
}

// NewTokenCodec constructs a codec. The secret comes from configuration so
// that tests can use a fixed deterministic key.
func NewTokenCodec(secret []byte, validity time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, validity: validity}
}

// Issue produces a signed token binding userID and access.
func (c *TokenCodec) Issue(userID string, access string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.validity)),
		},
		UserID: userID,
		Access: access,
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded user ID and access class. Malformed, forged, or expired input
// yields common.ErrInvalidToken or common.ErrTokenExpired; Verify never
// panics on garbage.
func (c *TokenCodec) Verify(tokenString string) (userID string, access string, err error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", common.ErrTokenExpired
		}
		return "", "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", "", common.ErrInvalidToken
	}

	return claims.UserID, claims.Access, nil
}
