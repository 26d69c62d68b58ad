// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrMissingToken    = errors.New("missing session token")
)

const tokenIssuer = "foodshare"

// SessionClaims identify a session. The token ID (jti) is the session ID.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs an HS256 token for a session.
// Tokens carry no expiry; they stop working when the session is logged out.
func IssueSessionToken(sessionID, email, role, secret string, issuedAt time.Time) (string, error) {
	claims := SessionClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Subject:  email,
			Issuer:   tokenIssuer,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies the signature and returns the claims
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

// ValidateAdminKey compares the provided key with the configured one in
// constant time. An empty configured key rejects everything.
func ValidateAdminKey(provided, configured string) error {
	if configured == "" {
		return ErrInvalidAdminKey
	}
	// Hash both sides so the comparison does not leak the key length
	p := sha256.Sum256([]byte(provided))
	c := sha256.Sum256([]byte(configured))
	if !hmac.Equal(p[:], c[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}
