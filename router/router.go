// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/foodshare/cliparse"
	"github.com/danielhkuo/foodshare/geocode"
	"github.com/danielhkuo/foodshare/handlers"
	"github.com/danielhkuo/foodshare/identity"
	"github.com/danielhkuo/foodshare/lifecycle"
	"github.com/danielhkuo/foodshare/mapview"
	"github.com/danielhkuo/foodshare/middleware"
	"github.com/danielhkuo/foodshare/notify"
	"github.com/danielhkuo/foodshare/photos"
	"github.com/danielhkuo/foodshare/session"
	"github.com/danielhkuo/foodshare/store"
)

// Deps are the adapters behind the API
type Deps struct {
	Store    *store.Store
	Identity identity.Provider
	Photos   photos.Store
	Geocoder geocode.Geocoder
	Notifier notify.Notifier
	Renderer mapview.Renderer
}

func NewRouter(deps Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	if deps.Renderer == nil {
		deps.Renderer = mapview.NewLeaflet()
	}

	gate := session.NewGate(deps.Store, deps.Identity, cfg.VerifyPasswords)
	svc := lifecycle.NewService(deps.Store, deps.Photos, deps.Geocoder, deps.Notifier, cfg.StrictClaims)
	sessions := middleware.NewSessionAuth(gate, cfg.SessionSecret)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(gate, cfg)
	listingHandler := handlers.NewListingHandler(svc, deps.Renderer)
	analyticsHandler := handlers.NewAnalyticsHandler(svc)
	userHandler := handlers.NewUserHandler(deps.Store, cfg)

	logged := middleware.WithLogging
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(sessions.Require(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Login/Register
	mux.HandleFunc("POST /auth/register", logged(authHandler.Register))
	mux.HandleFunc("POST /auth/login", logged(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", authed(authHandler.Logout))

	// Navigation
	mux.HandleFunc("GET /views", logged(sessions.Optional(handlers.Views)))

	// Donor
	mux.HandleFunc("GET /donor", authed(listingHandler.DonorView))
	mux.HandleFunc("POST /listings", authed(listingHandler.PostListing))

	// Receiver
	mux.HandleFunc("GET /listings", authed(listingHandler.Browse))
	mux.HandleFunc("GET /listings/map", authed(listingHandler.BrowseMap))
	mux.HandleFunc("POST /listings/{id}/claim", authed(listingHandler.Claim))

	// Analytics
	mux.HandleFunc("GET /analytics", authed(analyticsHandler.Impact))

	// Role assignment (requires X-Admin-Key)
	mux.HandleFunc("PUT /admin/users/{email}/role", logged(userHandler.UpdateRole))

	// Ratings and reviews
	mux.HandleFunc("POST /users/{email}/ratings", authed(userHandler.CreateRating))
	mux.HandleFunc("GET /users/{email}/ratings", authed(userHandler.ListRatings))
	mux.HandleFunc("POST /users/{email}/reviews", authed(userHandler.CreateReview))
	mux.HandleFunc("GET /users/{email}/reviews", authed(userHandler.ListReviews))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("foodshare API v1"))
	})

	return mux
}
