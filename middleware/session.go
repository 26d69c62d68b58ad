// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/danielhkuo/foodshare/auth"
	"github.com/danielhkuo/foodshare/session"
)

type contextKey int

const sessionKey contextKey = iota

// SessionLookup finds open sessions by id
type SessionLookup interface {
	Lookup(id string) (session.Session, bool)
}

// SessionAuth resolves bearer tokens into open sessions
type SessionAuth struct {
	sessions SessionLookup
	secret   string
}

func NewSessionAuth(sessions SessionLookup, secret string) *SessionAuth {
	return &SessionAuth{sessions: sessions, secret: secret}
}

// Resolve returns the open session named by the request's bearer token
func (a *SessionAuth) Resolve(r *http.Request) (session.Session, error) {
	token, err := auth.BearerToken(r)
	if err != nil {
		return session.Session{}, err
	}
	claims, err := auth.ParseSessionToken(token, a.secret)
	if err != nil {
		return session.Session{}, err
	}
	sess, ok := a.sessions.Lookup(claims.ID)
	if !ok || !sess.LoggedIn {
		return session.Session{}, auth.ErrInvalidToken
	}
	return sess, nil
}

// Require rejects requests without an open session
func (a *SessionAuth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := a.Resolve(r)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Please log in")
			return
		}
		next(w, r.WithContext(WithSession(r.Context(), sess)))
	}
}

// Optional attaches the session when there is one
func (a *SessionAuth) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, err := a.Resolve(r); err == nil {
			r = r.WithContext(WithSession(r.Context(), sess))
		}
		next(w, r)
	}
}

func WithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(session.Session)
	return sess, ok
}
