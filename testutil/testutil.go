// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/foodshare/cliparse"
	"github.com/danielhkuo/foodshare/db"
)

// TestDBURL opens a private in-memory SQLite database per connection
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       TestDBURL,
		DatabaseType:      "sqlite",
		SessionSecret:     "test-session-secret",
		AdminKey:          "test-admin-key",
		IdentityProvider:  "local",
		GeocoderUserAgent: cliparse.DefaultGeocoderUserAgent,
		PhotoStore:        "disk",
		UploadDir:         "uploads",
	}
}

// CreateTestUser inserts a user; an empty role is stored as NULL
func CreateTestUser(t *testing.T, conn *sqlx.DB, email, role string) {
	t.Helper()

	var r *string
	if role != "" {
		r = &role
	}
	_, err := conn.Exec(`INSERT INTO users (email, role) VALUES (?, ?)`, email, r)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestListing inserts an unclaimed listing and returns its id
func CreateTestListing(t *testing.T, conn *sqlx.DB, donorEmail, foodName, pickupLocation string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO food_listings (donor_email, food_name, quantity, expiry_date, pickup_location, is_claimed, created_at)
		VALUES (?, ?, '1 box', ?, ?, ?, ?)
		RETURNING id
	`, donorEmail, foodName, time.Now().AddDate(0, 0, 3).UTC(), pickupLocation, false, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test listing: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
