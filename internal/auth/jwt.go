// Package auth resolves the owner identity of a request from its bearer token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned for tokens that fail signature, expiry or
	// algorithm checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingOwner is returned for valid tokens that name no owner.
	ErrMissingOwner = errors.New("token has no owner")
)

// Claims carries the owner identity. The owner is the subject; OwnerID is
// accepted for tokens issued before the subject was used.
type Claims struct {
	jwt.RegisteredClaims
	OwnerID string `json:"ownerId,omitempty"`
}

// Owner returns the subject, or OwnerID when the subject is empty.
func (c *Claims) Owner() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.OwnerID
}

// GenerateToken signs an HS256 token for ownerID valid for ttl.
func GenerateToken(ownerID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// OwnerFromToken validates tokenString and returns the owner it names.
func OwnerFromToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	owner := claims.Owner()
	if owner == "" {
		return "", ErrMissingOwner
	}
	return owner, nil
}
