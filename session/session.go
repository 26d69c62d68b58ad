// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/foodshare/identity"
)

// ErrUnknownUser means the email has no role in the local user table
var ErrUnknownUser = errors.New("user not found in local database")

// Users is the part of the listing store the gate needs
type Users interface {
	CreateUser(ctx context.Context, email string, role *string) (bool, error)
	GetUserRole(ctx context.Context, email string) (string, bool, error)
}

// Session is the transient state of one logged-in user
type Session struct {
	ID        string
	Email     string
	Role      string
	LoggedIn  bool
	CreatedAt time.Time
}

// RegistrationError wraps the provider or storage failure behind a registration
type RegistrationError struct {
	Email string
	Err   error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration of %s failed: %v", e.Email, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Gate registers users, logs them in and out, and keeps the session registry
type Gate struct {
	users           Users
	idp             identity.Provider
	verifyPasswords bool

	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewGate(users Users, idp identity.Provider, verifyPasswords bool) *Gate {
	return &Gate{
		users:           users,
		idp:             idp,
		verifyPasswords: verifyPasswords,
		sessions:        make(map[string]Session),
		now:             time.Now,
	}
}

// Register creates the credential with the identity provider, then a local
// user without a role. A provider account is not rolled back when the local
// insert fails.
func (g *Gate) Register(ctx context.Context, email, password string) error {
	if _, err := g.idp.CreateCredential(ctx, email, password); err != nil {
		return &RegistrationError{Email: email, Err: err}
	}

	created, err := g.users.CreateUser(ctx, email, nil)
	if err != nil {
		return &RegistrationError{Email: email, Err: err}
	}
	if !created {
		slog.Warn("user already present in local database", "email", email)
	}

	slog.Info("user registered", "email", email)
	return nil
}

// Login opens a session for a user that has a stored role.
// The password is only checked when password verification is enabled and the
// provider supports it.
func (g *Gate) Login(ctx context.Context, email, password string) (Session, error) {
	if g.verifyPasswords {
		if v, ok := g.idp.(identity.Verifier); ok {
			if _, err := v.VerifyCredential(ctx, email, password); err != nil {
				return Session{}, err
			}
		}
	}

	role, found, err := g.users.GetUserRole(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up user role: %w", err)
	}
	if !found {
		return Session{}, ErrUnknownUser
	}

	sess := Session{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		LoggedIn:  true,
		CreatedAt: g.now(),
	}

	g.mu.Lock()
	g.sessions[sess.ID] = sess
	g.mu.Unlock()

	slog.Info("user logged in", "email", email, "role", role)
	return sess, nil
}

// Logout ends a session. Unknown ids are ignored.
func (g *Gate) Logout(id string) {
	g.mu.Lock()
	sess, ok := g.sessions[id]
	delete(g.sessions, id)
	g.mu.Unlock()

	if ok {
		slog.Info("user logged out", "email", sess.Email)
	}
}

func (g *Gate) Lookup(id string) (Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	sess, ok := g.sessions[id]
	return sess, ok
}
