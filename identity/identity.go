// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"strings"
)

// Error codes shared by all providers. They follow the Firebase Identity
// Toolkit codes so messages read the same whichever provider is configured.
const (
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeMissingPassword    = "MISSING_PASSWORD"
	CodeInvalidCredentials = "INVALID_LOGIN_CREDENTIALS"
)

const MinPasswordLength = 6

// Principal is an account known to the identity provider
type Principal struct {
	UID   string
	Email string
}

// Provider creates credentials
type Provider interface {
	CreateCredential(ctx context.Context, email, password string) (Principal, error)
}

// Verifier checks a password against an existing credential
type Verifier interface {
	VerifyCredential(ctx context.Context, email, password string) (Principal, error)
}

// AuthError is a rejection by the identity provider. Message is shown to users as is.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// newAuthError splits a provider message like "WEAK_PASSWORD : Password should be..."
// into its code and keeps the full text as the message.
func newAuthError(message string) *AuthError {
	code, _, _ := strings.Cut(message, " ")
	return &AuthError{Code: code, Message: message}
}
