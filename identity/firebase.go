// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultFirebaseURL = "https://identitytoolkit.googleapis.com/v1"

// Firebase talks to the Firebase Identity Toolkit REST API
type Firebase struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewFirebase creates a client. An empty baseURL uses DefaultFirebaseURL.
func NewFirebase(apiKey, baseURL string, client *http.Client) *Firebase {
	if baseURL == "" {
		baseURL = DefaultFirebaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Firebase{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type firebaseRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type firebaseResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCredential calls accounts:signUp
func (f *Firebase) CreateCredential(ctx context.Context, email, password string) (Principal, error) {
	return f.call(ctx, "accounts:signUp", email, password)
}

// VerifyCredential calls accounts:signInWithPassword
func (f *Firebase) VerifyCredential(ctx context.Context, email, password string) (Principal, error) {
	return f.call(ctx, "accounts:signInWithPassword", email, password)
}

func (f *Firebase) call(ctx context.Context, method, email, password string) (Principal, error) {
	body, err := json.Marshal(firebaseRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return Principal{}, fmt.Errorf("failed to encode firebase request: %w", err)
	}

	endpoint := f.baseURL + "/" + method + "?key=" + url.QueryEscape(f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Principal{}, fmt.Errorf("failed to build firebase request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return Principal{}, fmt.Errorf("firebase %s: %w", method, err)
	}
	defer resp.Body.Close()

	var out firebaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Principal{}, fmt.Errorf("firebase %s: failed to decode response (status %d): %w", method, resp.StatusCode, err)
	}

	if out.Error != nil {
		return Principal{}, newAuthError(out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return Principal{}, fmt.Errorf("firebase %s: unexpected status %d", method, resp.StatusCode)
	}

	return Principal{UID: out.LocalID, Email: out.Email}, nil
}
