// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/foodshare/auth"
	"github.com/danielhkuo/foodshare/cliparse"
	"github.com/danielhkuo/foodshare/middleware"
	"github.com/danielhkuo/foodshare/models"
)

// UserStore is the user-facing part of the listing store
type UserStore interface {
	UpdateUserRole(ctx context.Context, email, role string) error
	AddRating(ctx context.Context, raterEmail, ratedEmail string, rating int) (int64, error)
	ListRatings(ctx context.Context, ratedEmail string) ([]models.Rating, error)
	AddReview(ctx context.Context, reviewerEmail, reviewedEmail, text string) (int64, error)
	ListReviews(ctx context.Context, reviewedEmail string) ([]models.Review, error)
}

type UserHandler struct {
	store    UserStore
	cfg      cliparse.Config
	validate *validator.Validate
}

func NewUserHandler(st UserStore, cfg cliparse.Config) *UserHandler {
	return &UserHandler{store: st, cfg: cfg, validate: validator.New()}
}

// UpdateRole handles PUT /admin/users/{email}/role
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	email := r.PathValue("email")
	var req models.UpdateRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Role = strings.TrimSpace(req.Role)
	if req.Role == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role is required")
		return
	}

	if err := h.store.UpdateUserRole(r.Context(), email, req.Role); err != nil {
		writeError(w, err, "Failed to update role")
		return
	}

	slog.Info("user role updated", "email", email, "role", req.Role)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Role updated"})
}

// CreateRating handles POST /users/{email}/ratings
func (h *UserHandler) CreateRating(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	var req models.CreateRatingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		middleware.FieldErrorResponse(w, "rating must be between 1 and 5", []string{"rating"})
		return
	}

	id, err := h.store.AddRating(r.Context(), sess.Email, r.PathValue("email"), req.Rating)
	if err != nil {
		writeError(w, err, "Failed to save rating")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// ListRatings handles GET /users/{email}/ratings
func (h *UserHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.store.ListRatings(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, err, "Failed to load ratings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ratings)
}

// CreateReview handles POST /users/{email}/reviews
func (h *UserHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	var req models.CreateReviewRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.ReviewText = strings.TrimSpace(req.ReviewText)
	if err := h.validate.Struct(req); err != nil {
		middleware.FieldErrorResponse(w, "review_text is required", []string{"review_text"})
		return
	}

	id, err := h.store.AddReview(r.Context(), sess.Email, r.PathValue("email"), req.ReviewText)
	if err != nil {
		writeError(w, err, "Failed to save review")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// ListReviews handles GET /users/{email}/reviews
func (h *UserHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.store.ListReviews(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, err, "Failed to load reviews")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, reviews)
}
