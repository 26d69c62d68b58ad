// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the API.

# Domain Types

Records scanned from the store (db tags) and serialised to clients (json tags):

  - User: email, role (nullable)
  - FoodListing: donor, food, quantity, expiry, pickup location, photo, claim state
  - Rating: rater, rated, 1-5 value
  - Review: reviewer, reviewed, text

Nullable columns are pointers. A FoodListing has a non-nil ReceiverEmail
exactly when IsClaimed is true.

# Map Types

MapView is what a map renderer draws: a center Point, a zoom level and one
Marker per geocoded listing.

# Request Types

  - CredentialsRequest: email, password
  - UpdateRoleRequest: role
  - CreateRatingRequest: rating
  - CreateReviewRequest: review_text

Listings are posted as multipart forms, not JSON.

# Response Types

  - LoginResponse: token, email, role
  - NavigationResponse: logged_in, views
  - ListingsResponse: disclaimer, listings, map
  - AnalyticsResponse: summary, metrics
  - ErrorResponse: error, message, fields
*/
package models
