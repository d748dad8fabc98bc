// Package token issues and verifies the signed access and refresh tokens
// that identify a logged-in user.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects which of the two token types an operation applies to.
type Kind int

const (
	// Access is the short-lived token presented on protected requests.
	Access Kind = iota
	// Refresh is the longer-lived token used to obtain a new pair.
	Refresh
)

// ErrInvalidToken is returned when a token is malformed, forged, expired,
// or signed for the other kind. Callers get no finer distinction.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	// UserID is the unique identifier of the user.
	UserID string `json:"id"`
	// Username is the login name of the user.
	Username string `json:"username"`
}

// Issuer signs and verifies token pairs. Access and refresh tokens use
// distinct secrets, so a token of one kind never verifies as the other.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer constructs an Issuer from the two signing secrets and lifetimes.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs an access token for the given user.
func (i *Issuer) IssueAccessToken(userID, username string) (string, error) {
	return i.issue(userID, username, i.accessSecret, i.accessTTL)
}

// IssueRefreshToken signs a refresh token for the given user.
func (i *Issuer) IssueRefreshToken(userID, username string) (string, error) {
	return i.issue(userID, username, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) issue(userID, username string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		Username: username,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString against the secret
// for the given kind and returns its claims. Any failure, including a token
// signed for the other kind, collapses to ErrInvalidToken.
func (i *Issuer) Verify(tokenString string, kind Kind) (*Claims, error) {
	secret := i.accessSecret
	if kind == Refresh {
		secret = i.refreshSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
