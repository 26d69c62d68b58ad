// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/foodshare/middleware"
	"github.com/danielhkuo/foodshare/models"
)

// Logged-in users may open every view whatever their stored role
var loggedInViews = []string{models.ViewDonor, models.ViewReceiver, models.ViewAnalytics}

// Views handles GET /views
func Views(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.NavigationResponse{
			Views: []string{models.ViewLogin},
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NavigationResponse{
		LoggedIn: true,
		Email:    sess.Email,
		Role:     sess.Role,
		Views:    loggedInViews,
	})
}
