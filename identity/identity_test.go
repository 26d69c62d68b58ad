// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestLocal() *Local {
	l := NewLocal()
	l.cost = bcrypt.MinCost
	return l
}

func TestLocal_CreateCredential(t *testing.T) {
	l := newTestLocal()
	ctx := context.Background()

	p, err := l.CreateCredential(ctx, "d@x.com", "secret123")
	if err != nil {
		t.Fatalf("CreateCredential() error = %v", err)
	}
	if p.UID == "" || p.Email != "d@x.com" {
		t.Errorf("unexpected principal %+v", p)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{"duplicate account", "d@x.com", "secret123", CodeEmailExists},
		{"invalid email", "not-an-email", "secret123", CodeInvalidEmail},
		{"missing password", "e@x.com", "", CodeMissingPassword},
		{"weak password", "e@x.com", "abc", CodeWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.CreateCredential(ctx, tt.email, tt.password)
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected *AuthError, got %v", err)
			}
			if authErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", authErr.Code, tt.wantCode)
			}
		})
	}
}

func TestLocal_WeakPasswordMessage(t *testing.T) {
	l := newTestLocal()

	_, err := l.CreateCredential(context.Background(), "d@x.com", "abc")
	want := "WEAK_PASSWORD : Password should be at least 6 characters"
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}

func TestLocal_VerifyCredential(t *testing.T) {
	l := newTestLocal()
	ctx := context.Background()

	created, _ := l.CreateCredential(ctx, "d@x.com", "secret123")

	p, err := l.VerifyCredential(ctx, "d@x.com", "secret123")
	if err != nil {
		t.Fatalf("VerifyCredential() error = %v", err)
	}
	if p.UID != created.UID {
		t.Errorf("UID = %q, want %q", p.UID, created.UID)
	}

	for _, tc := range []struct{ email, password string }{
		{"d@x.com", "wrong-password"},
		{"unknown@x.com", "secret123"},
	} {
		_, err := l.VerifyCredential(ctx, tc.email, tc.password)
		var authErr *AuthError
		if !errors.As(err, &authErr) || authErr.Code != CodeInvalidCredentials {
			t.Errorf("VerifyCredential(%s) = %v, want %s", tc.email, err, CodeInvalidCredentials)
		}
	}
}

func newFirebaseServer(t *testing.T) *httptest.Server {
	t.Helper()

	accounts := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key."}}`))
			return
		}

		var req firebaseRequest
		json.NewDecoder(r.Body).Decode(&req)

		writeErr := func(msg string) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 400, "message": msg}})
		}

		switch r.URL.Path {
		case "/accounts:signUp":
			if _, ok := accounts[req.Email]; ok {
				writeErr("EMAIL_EXISTS")
				return
			}
			if len(req.Password) < 6 {
				writeErr("WEAK_PASSWORD : Password should be at least 6 characters")
				return
			}
			accounts[req.Email] = req.Password
		case "/accounts:signInWithPassword":
			if pw, ok := accounts[req.Email]; !ok || pw != req.Password {
				writeErr("INVALID_LOGIN_CREDENTIALS")
				return
			}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}

		json.NewEncoder(w).Encode(map[string]string{"localId": "uid-" + req.Email, "email": req.Email})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFirebase_CreateAndVerify(t *testing.T) {
	srv := newFirebaseServer(t)
	f := NewFirebase("test-key", srv.URL, srv.Client())
	ctx := context.Background()

	p, err := f.CreateCredential(ctx, "d@x.com", "secret123")
	if err != nil {
		t.Fatalf("CreateCredential() error = %v", err)
	}
	if p.UID != "uid-d@x.com" || p.Email != "d@x.com" {
		t.Errorf("unexpected principal %+v", p)
	}

	if _, err := f.VerifyCredential(ctx, "d@x.com", "secret123"); err != nil {
		t.Errorf("VerifyCredential() error = %v", err)
	}
}

func TestFirebase_Errors(t *testing.T) {
	srv := newFirebaseServer(t)
	f := NewFirebase("test-key", srv.URL, srv.Client())
	ctx := context.Background()

	f.CreateCredential(ctx, "d@x.com", "secret123")

	tests := []struct {
		name     string
		call     func() error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "duplicate",
			call:     func() error { _, err := f.CreateCredential(ctx, "d@x.com", "secret123"); return err },
			wantCode: CodeEmailExists,
			wantMsg:  "EMAIL_EXISTS",
		},
		{
			name:     "weak password",
			call:     func() error { _, err := f.CreateCredential(ctx, "e@x.com", "abc"); return err },
			wantCode: CodeWeakPassword,
			wantMsg:  "WEAK_PASSWORD : Password should be at least 6 characters",
		},
		{
			name:     "wrong password",
			call:     func() error { _, err := f.VerifyCredential(ctx, "d@x.com", "nope"); return err },
			wantCode: CodeInvalidCredentials,
			wantMsg:  "INVALID_LOGIN_CREDENTIALS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected *AuthError, got %v", err)
			}
			if authErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", authErr.Code, tt.wantCode)
			}
			if authErr.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", authErr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFirebase_BadAPIKey(t *testing.T) {
	srv := newFirebaseServer(t)
	f := NewFirebase("wrong-key", srv.URL, srv.Client())

	_, err := f.CreateCredential(context.Background(), "d@x.com", "secret123")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if authErr.Code != "API" {
		t.Errorf("Code = %q, want first word of message", authErr.Code)
	}
}
