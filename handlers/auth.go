// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/foodshare/auth"
	"github.com/danielhkuo/foodshare/cliparse"
	"github.com/danielhkuo/foodshare/identity"
	"github.com/danielhkuo/foodshare/middleware"
	"github.com/danielhkuo/foodshare/models"
	"github.com/danielhkuo/foodshare/session"
)

type AuthHandler struct {
	gate *session.Gate
	cfg  cliparse.Config
}

func NewAuthHandler(gate *session.Gate, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{gate: gate, cfg: cfg}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := h.gate.Register(r.Context(), req.Email, req.Password); err != nil {
		var authErr *identity.AuthError
		if errors.As(err, &authErr) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Error creating user: "+authErr.Error())
			return
		}
		writeError(w, err, "Failed to create user")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Account created successfully! Please login with your new credentials.",
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	sess, err := h.gate.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *identity.AuthError
		switch {
		case errors.Is(err, session.ErrUnknownUser):
			middleware.ErrorResponse(w, http.StatusUnauthorized, MsgUnknownUser)
		case errors.As(err, &authErr):
			middleware.ErrorResponse(w, http.StatusUnauthorized, MsgLoginFailed)
		default:
			writeError(w, err, MsgLoginFailed)
		}
		return
	}

	token, err := auth.IssueSessionToken(sess.ID, sess.Email, sess.Role, h.cfg.SessionSecret, sess.CreatedAt)
	if err != nil {
		h.gate.Logout(sess.ID)
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, MsgLoginFailed)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:   token,
		Email:   sess.Email,
		Role:    sess.Role,
		Message: "Welcome back!",
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if ok {
		h.gate.Logout(sess.ID)
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}
