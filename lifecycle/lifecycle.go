// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/foodshare/geocode"
	"github.com/danielhkuo/foodshare/models"
	"github.com/danielhkuo/foodshare/notify"
	"github.com/danielhkuo/foodshare/photos"
	"github.com/danielhkuo/foodshare/session"
)

const (
	DonorDisclaimer = "⚠️ Food Safety Disclaimer: By posting a food item, you certify it is safe for consumption " +
		"and was handled properly. The app and its developers are not responsible for any food-related issues."
	ReceiverDisclaimer = "⚠️ Food Safety Disclaimer: Food items are donated by community members and are not " +
		"inspected. Please exercise caution and common sense before consuming any food received."
)

// Default map position for the receiver board
var (
	DefaultCenter = models.Point{Lat: 40.7128, Lon: -74.0060}
	DefaultZoom   = 12
)

var ErrAlreadyClaimed = errors.New("listing already claimed")

// ValidationError lists the required form fields that were empty
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ListingStore is the part of the listing store the lifecycle uses
type ListingStore interface {
	CreateFoodListing(ctx context.Context, l models.NewFoodListing) (int64, error)
	GetFoodListing(ctx context.Context, id int64) (models.FoodListing, error)
	ListUnclaimedFoodListings(ctx context.Context) ([]models.FoodListing, error)
	ClaimFoodListing(ctx context.Context, id int64, receiverEmail string) error
	ClaimUnclaimedFoodListing(ctx context.Context, id int64, receiverEmail string) (bool, error)
	CountClaimedListings(ctx context.Context) (int, error)
}

// Photo is an uploaded image
type Photo struct {
	Name string
	Data []byte
}

// PostInput is the donor's post form
type PostInput struct {
	FoodName       string `validate:"required"`
	Quantity       string `validate:"required"`
	ExpiryDate     time.Time
	PickupLocation string `validate:"required"`
	Photo          *Photo
}

// Board is what a receiver sees: detail cards and a map of the geocoded ones
type Board struct {
	Listings []models.FoodListing
	Map      models.MapView
}

// Impact is the analytics summary
type Impact struct {
	MealsSaved int
	Metrics    []models.Metric
}

type Service struct {
	store        ListingStore
	photos       photos.Store
	geocoder     geocode.Geocoder
	notifier     notify.Notifier
	validate     *validator.Validate
	strictClaims bool
}

func NewService(st ListingStore, ph photos.Store, gc geocode.Geocoder, n notify.Notifier, strictClaims bool) *Service {
	if n == nil {
		n = notify.Nop{}
	}
	return &Service{
		store:        st,
		photos:       ph,
		geocoder:     gc,
		notifier:     n,
		validate:     validator.New(),
		strictClaims: strictClaims,
	}
}

// Post validates the form, stores the photo if any, and creates the listing
// with the session's email as donor.
func (s *Service) Post(ctx context.Context, sess session.Session, in PostInput) (int64, error) {
	in.FoodName = strings.TrimSpace(in.FoodName)
	in.Quantity = strings.TrimSpace(in.Quantity)
	in.PickupLocation = strings.TrimSpace(in.PickupLocation)

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return 0, fmt.Errorf("failed to validate listing: %w", err)
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldName(fe.Field()))
		}
		return 0, &ValidationError{Fields: fields}
	}

	var photoURL *string
	if in.Photo != nil && len(in.Photo.Data) > 0 {
		if s.photos == nil {
			return 0, errors.New("photo uploads are not configured")
		}
		ref, err := s.photos.Save(ctx, in.Photo.Data, in.Photo.Name)
		if err != nil {
			return 0, fmt.Errorf("failed to save photo: %w", err)
		}
		photoURL = &ref
	}

	id, err := s.store.CreateFoodListing(ctx, models.NewFoodListing{
		DonorEmail:     sess.Email,
		FoodName:       in.FoodName,
		Quantity:       in.Quantity,
		ExpiryDate:     in.ExpiryDate,
		PickupLocation: in.PickupLocation,
		PhotoURL:       photoURL,
	})
	if err != nil {
		return 0, err
	}

	slog.Info("listing posted", "listing_id", id, "donor", sess.Email, "food", in.FoodName)
	return id, nil
}

// Browse lists unclaimed food. Listings whose address cannot be geocoded
// keep their card but get no marker.
func (s *Service) Browse(ctx context.Context) (Board, error) {
	listings, err := s.store.ListUnclaimedFoodListings(ctx)
	if err != nil {
		return Board{}, err
	}

	board := Board{
		Listings: listings,
		Map: models.MapView{
			Center:  DefaultCenter,
			Zoom:    DefaultZoom,
			Markers: []models.Marker{},
		},
	}

	for _, l := range listings {
		if s.geocoder == nil {
			break
		}
		pt, err := s.geocoder.Geocode(ctx, l.PickupLocation)
		if err != nil {
			slog.Warn("failed to geocode pickup location",
				"listing_id", l.ID,
				"location", l.PickupLocation,
				"error", err,
			)
			continue
		}
		board.Map.Markers = append(board.Map.Markers, models.Marker{
			Lat:   pt.Lat,
			Lon:   pt.Lon,
			Label: l.FoodName,
			Popup: fmt.Sprintf("**%s** - %s<br>Click to claim!", l.FoodName, l.Quantity),
		})
	}

	return board, nil
}

// Claim marks a listing as claimed by the session's user and notifies the
// donor. Without strict claims the update is unconditional and the last
// claimer wins.
func (s *Service) Claim(ctx context.Context, sess session.Session, id int64) error {
	if s.strictClaims {
		claimed, err := s.store.ClaimUnclaimedFoodListing(ctx, id, sess.Email)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrAlreadyClaimed
		}
	} else if err := s.store.ClaimFoodListing(ctx, id, sess.Email); err != nil {
		return err
	}

	slog.Info("listing claimed", "listing_id", id, "receiver", sess.Email)
	s.notifyDonor(ctx, id, sess.Email)
	return nil
}

func (s *Service) notifyDonor(ctx context.Context, id int64, receiverEmail string) {
	listing, err := s.store.GetFoodListing(ctx, id)
	if err != nil {
		slog.Warn("failed to load claimed listing for notification", "listing_id", id, "error", err)
		return
	}
	if err := s.notifier.ListingClaimed(ctx, listing, receiverEmail); err != nil {
		slog.Warn("failed to notify donor", "listing_id", id, "donor", listing.DonorEmail, "error", err)
	}
}

// Impact returns the community metrics
func (s *Service) Impact(ctx context.Context) (Impact, error) {
	count, err := s.store.CountClaimedListings(ctx)
	if err != nil {
		return Impact{}, err
	}

	return Impact{
		MealsSaved: count,
		Metrics: []models.Metric{
			{Label: "Meals Saved", Value: strconv.Itoa(count)},
			{Label: "CO₂ Saved", Value: "~0 kg"},
			{Label: "People Helped", Value: "~0"},
		},
	}, nil
}

// fieldName maps struct fields to form field names
func fieldName(field string) string {
	switch field {
	case "FoodName":
		return "food_name"
	case "Quantity":
		return "quantity"
	case "PickupLocation":
		return "pickup_location"
	}
	return field
}
