// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Sessions

SessionAuth turns an "Authorization: Bearer <token>" header into the open
session it names:

	sa := middleware.NewSessionAuth(gate, cfg.SessionSecret)
	mux.HandleFunc("GET /listings", middleware.WithLogging(sa.Require(h.Browse)))

Require answers 401 when the token is missing, forged, or names a session that
has logged out. Optional attaches the session when present and lets anonymous
requests through. Handlers read the session with SessionFromContext.

# CORS Middleware

Enable cross-origin requests for browser clients:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.FieldErrorResponse(w, "message", []string{"food_name"})

	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
