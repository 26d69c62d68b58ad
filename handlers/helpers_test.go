// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/foodshare/auth"
	"github.com/danielhkuo/foodshare/cliparse"
	"github.com/danielhkuo/foodshare/geocode"
	"github.com/danielhkuo/foodshare/identity"
	"github.com/danielhkuo/foodshare/lifecycle"
	"github.com/danielhkuo/foodshare/mapview"
	"github.com/danielhkuo/foodshare/middleware"
	"github.com/danielhkuo/foodshare/models"
	"github.com/danielhkuo/foodshare/photos"
	"github.com/danielhkuo/foodshare/session"
	"github.com/danielhkuo/foodshare/store"
	"github.com/danielhkuo/foodshare/testutil"
)

type recordingNotifier struct {
	mu      sync.Mutex
	donors  []string
	receive []string
}

func (n *recordingNotifier) ListingClaimed(ctx context.Context, listing models.FoodListing, receiverEmail string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.donors = append(n.donors, listing.DonorEmail)
	n.receive = append(n.receive, receiverEmail)
	return nil
}

type testEnv struct {
	db       *sqlx.DB
	cfg      cliparse.Config
	store    *store.Store
	gate     *session.Gate
	svc      *lifecycle.Service
	sessions *middleware.SessionAuth
	notifier *recordingNotifier
	uploads  string

	auth      *AuthHandler
	listings  *ListingHandler
	analytics *AnalyticsHandler
	users     *UserHandler
}

func newTestEnv(t *testing.T, strictClaims bool) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.StrictClaims = strictClaims
	cfg.UploadDir = t.TempDir()

	st := store.New(conn)
	gate := session.NewGate(st, identity.NewLocal(), false)
	gc := geocode.Static{
		"123 Main St": {Lat: 40.71, Lon: -74.0},
	}
	notifier := &recordingNotifier{}
	svc := lifecycle.NewService(st, photos.NewDisk(cfg.UploadDir), gc, notifier, strictClaims)

	return &testEnv{
		db:        conn,
		cfg:       cfg,
		store:     st,
		gate:      gate,
		svc:       svc,
		sessions:  middleware.NewSessionAuth(gate, cfg.SessionSecret),
		notifier:  notifier,
		uploads:   cfg.UploadDir,
		auth:      NewAuthHandler(gate, cfg),
		listings:  NewListingHandler(svc, mapview.NewLeaflet()),
		analytics: NewAnalyticsHandler(svc),
		users:     NewUserHandler(st, cfg),
	}
}

// login stores a user with the given role and returns a bearer header for a
// fresh session
func (e *testEnv) login(t *testing.T, email, role string) map[string]string {
	t.Helper()

	testutil.CreateTestUser(t, e.db, email, role)
	sess, err := e.gate.Login(context.Background(), email, "")
	if err != nil {
		t.Fatalf("Failed to log in %s: %v", email, err)
	}
	token, err := auth.IssueSessionToken(sess.ID, sess.Email, sess.Role, e.cfg.SessionSecret, sess.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// serve runs the handler behind the session gate
func (e *testEnv) serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.sessions.Require(h)(w, req)
	return w
}

type upload struct {
	name string
	data []byte
}

// postForm builds a multipart POST /listings request
func postForm(t *testing.T, fields map[string]string, photo *upload, headers map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field: %v", err)
		}
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", photo.name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		part.Write(photo.data)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/listings", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func breadForm() map[string]string {
	return map[string]string{
		"food_name":       "Bread",
		"quantity":        "3 loaves",
		"expiry_date":     "2025-01-02",
		"pickup_location": "123 Main St",
	}
}
