// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/foodshare/lifecycle"
	"github.com/danielhkuo/foodshare/mapview"
	"github.com/danielhkuo/foodshare/middleware"
	"github.com/danielhkuo/foodshare/models"
)

const (
	// MaxUploadSize bounds the post form including the photo
	MaxUploadSize = 10 << 20

	dateLayout = "2006-01-02"
)

var photoExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

type ListingHandler struct {
	svc      *lifecycle.Service
	renderer mapview.Renderer
}

func NewListingHandler(svc *lifecycle.Service, renderer mapview.Renderer) *ListingHandler {
	return &ListingHandler{svc: svc, renderer: renderer}
}

// DonorView handles GET /donor
func (h *ListingHandler) DonorView(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.DonorViewResponse{
		Disclaimer: lifecycle.DonorDisclaimer,
	})
}

// PostListing handles POST /listings
//
// The body is a multipart form with food_name, quantity, expiry_date
// (YYYY-MM-DD, defaults to today), pickup_location and an optional photo file.
func (h *ListingHandler) PostListing(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
		if err := r.ParseForm(); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
	}

	expiry := time.Now().UTC().Truncate(24 * time.Hour)
	if v := strings.TrimSpace(r.FormValue("expiry_date")); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			middleware.FieldErrorResponse(w, "expiry_date must be YYYY-MM-DD", []string{"expiry_date"})
			return
		}
		expiry = parsed
	}

	photo, err := readPhoto(r)
	if err != nil {
		middleware.FieldErrorResponse(w, err.Error(), []string{"photo"})
		return
	}

	in := lifecycle.PostInput{
		FoodName:       r.FormValue("food_name"),
		Quantity:       r.FormValue("quantity"),
		ExpiryDate:     expiry,
		PickupLocation: r.FormValue("pickup_location"),
		Photo:          photo,
	}

	id, err := h.svc.Post(r.Context(), sess, in)
	if err != nil {
		writeError(w, err, "Failed to post food item")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.PostListingResponse{
		ListingID: id,
		Message:   fmt.Sprintf("Successfully posted: %s (%s)", strings.TrimSpace(in.FoodName), strings.TrimSpace(in.Quantity)),
	})
}

// readPhoto returns the uploaded photo, or nil when none was sent
func readPhoto(r *http.Request) (*lifecycle.Photo, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("invalid photo upload")
	}
	defer file.Close()

	if !photoExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return nil, errors.New("photo must be a png, jpg or jpeg file")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("invalid photo upload")
	}
	return &lifecycle.Photo{Name: header.Filename, Data: data}, nil
}

// Browse handles GET /listings
func (h *ListingHandler) Browse(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.Browse(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load food listings")
		return
	}

	resp := models.ListingsResponse{
		Disclaimer: lifecycle.ReceiverDisclaimer,
		Listings:   board.Listings,
		Map:        board.Map,
	}
	if len(board.Listings) == 0 {
		resp.Message = "There are no food items available at the moment. Please check back later!"
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// BrowseMap handles GET /listings/map
func (h *ListingHandler) BrowseMap(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.Browse(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load food listings")
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if err := h.renderer.Render(w, board.Map); err != nil {
		slog.Error("failed to render map", "error", err)
	}
}

// Claim handles POST /listings/{id}/claim
func (h *ListingHandler) Claim(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	if err := h.svc.Claim(r.Context(), sess, id); err != nil {
		writeError(w, err, "Failed to claim food item")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClaimResponse{
		ListingID: id,
		Message:   "You have claimed this item! The donor has been notified.",
	})
}

type AnalyticsHandler struct {
	svc *lifecycle.Service
}

func NewAnalyticsHandler(svc *lifecycle.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Impact handles GET /analytics
func (h *AnalyticsHandler) Impact(w http.ResponseWriter, r *http.Request) {
	impact, err := h.svc.Impact(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load analytics")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AnalyticsResponse{
		Summary: "A summary of the community's impact.",
		Metrics: impact.Metrics,
	})
}
