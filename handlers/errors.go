// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/foodshare/identity"
	"github.com/danielhkuo/foodshare/lifecycle"
	"github.com/danielhkuo/foodshare/middleware"
	"github.com/danielhkuo/foodshare/session"
	"github.com/danielhkuo/foodshare/store"
)

const (
	MsgMissingFields  = "Please fill in all the required fields."
	MsgUnknownUser    = "User not found in local database. Please register."
	MsgLoginFailed    = "Login failed. Please check your credentials."
	MsgAlreadyClaimed = "This item has already been claimed."
)

// writeError maps domain errors to HTTP responses. Anything unrecognised is
// logged and reported as a 500 with the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var verr *lifecycle.ValidationError
	var authErr *identity.AuthError

	switch {
	case errors.As(err, &verr):
		middleware.FieldErrorResponse(w, MsgMissingFields, verr.Fields)
	case errors.Is(err, session.ErrUnknownUser):
		middleware.ErrorResponse(w, http.StatusUnauthorized, MsgUnknownUser)
	case errors.As(err, &authErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, authErr.Error())
	case errors.Is(err, lifecycle.ErrAlreadyClaimed):
		middleware.ErrorResponse(w, http.StatusConflict, MsgAlreadyClaimed)
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	default:
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
