// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/foodshare/models"
)

// ErrNotFound means the address could not be resolved
var ErrNotFound = errors.New("address not found")

// Geocoder resolves free-text addresses to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Point, error)
}

// Nominatim queries an OpenStreetMap Nominatim search endpoint
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatim(baseURL, userAgent string, client *http.Client) *Nominatim {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    client,
	}
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the first match for address
func (n *Nominatim) Geocode(ctx context.Context, address string) (models.Point, error) {
	if strings.TrimSpace(address) == "" {
		return models.Point{}, ErrNotFound
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return models.Point{}, fmt.Errorf("failed to build geocode request: %w", err)
	}
	// Nominatim's usage policy requires an identifying user agent
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return models.Point{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Point{}, fmt.Errorf("geocode request failed: status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return models.Point{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(places) == 0 {
		return models.Point{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid longitude %q: %w", places[0].Lon, err)
	}

	return models.Point{Lat: lat, Lon: lon}, nil
}

// Static resolves addresses from a fixed table
type Static map[string]models.Point

func (s Static) Geocode(ctx context.Context, address string) (models.Point, error) {
	p, ok := s[address]
	if !ok {
		return models.Point{}, ErrNotFound
	}
	return p, nil
}
