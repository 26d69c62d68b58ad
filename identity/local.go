// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	uid  string
	hash []byte
}

// Local keeps bcrypt-hashed credentials in process memory.
// Accounts are lost on restart; use it for development and tests.
type Local struct {
	mu       sync.Mutex
	accounts map[string]account
	validate *validator.Validate
	cost     int
}

func NewLocal() *Local {
	return &Local{
		accounts: make(map[string]account),
		validate: validator.New(),
		cost:     bcrypt.DefaultCost,
	}
}

// CreateCredential registers a new account
func (l *Local) CreateCredential(ctx context.Context, email, password string) (Principal, error) {
	if err := l.validate.Var(email, "required,email"); err != nil {
		return Principal{}, &AuthError{Code: CodeInvalidEmail, Message: CodeInvalidEmail}
	}
	if password == "" {
		return Principal{}, &AuthError{Code: CodeMissingPassword, Message: CodeMissingPassword}
	}
	if len(password) < MinPasswordLength {
		return Principal{}, newAuthError(fmt.Sprintf("%s : Password should be at least %d characters", CodeWeakPassword, MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to hash password: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.accounts[email]; exists {
		return Principal{}, &AuthError{Code: CodeEmailExists, Message: CodeEmailExists}
	}

	uid := uuid.NewString()
	l.accounts[email] = account{uid: uid, hash: hash}

	return Principal{UID: uid, Email: email}, nil
}

// VerifyCredential checks the password of an existing account
func (l *Local) VerifyCredential(ctx context.Context, email, password string) (Principal, error) {
	l.mu.Lock()
	acct, ok := l.accounts[email]
	l.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(password)) != nil {
		return Principal{}, &AuthError{Code: CodeInvalidCredentials, Message: CodeInvalidCredentials}
	}

	return Principal{UID: acct.uid, Email: email}, nil
}
