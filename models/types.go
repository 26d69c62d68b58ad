package models

import "time"

// Role values commonly stored on a user. The role column is an open string space.
const (
	RoleDonor    = "donor"
	RoleReceiver = "receiver"
)

// View names for the navigation surface
const (
	ViewLogin     = "Login/Register"
	ViewDonor     = "Donor"
	ViewReceiver  = "Receiver"
	ViewAnalytics = "Analytics"
)

// Domain types

type User struct {
	Email string  `db:"email" json:"email"`
	Role  *string `db:"role" json:"role,omitempty"`
}

type FoodListing struct {
	ID             int64     `db:"id" json:"id"`
	DonorEmail     string    `db:"donor_email" json:"donor_email"`
	FoodName       string    `db:"food_name" json:"food_name"`
	Quantity       string    `db:"quantity" json:"quantity"`
	ExpiryDate     time.Time `db:"expiry_date" json:"expiry_date"`
	PickupLocation string    `db:"pickup_location" json:"pickup_location"`
	PhotoURL       *string   `db:"photo_url" json:"photo_url,omitempty"`
	IsClaimed      bool      `db:"is_claimed" json:"is_claimed"`
	ReceiverEmail  *string   `db:"receiver_email" json:"receiver_email,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// NewFoodListing holds the donor-supplied fields of a listing
type NewFoodListing struct {
	DonorEmail     string
	FoodName       string
	Quantity       string
	ExpiryDate     time.Time
	PickupLocation string
	PhotoURL       *string
}

type Rating struct {
	ID         int64     `db:"id" json:"id"`
	RaterEmail string    `db:"rater_email" json:"rater_email"`
	RatedEmail string    `db:"rated_email" json:"rated_email"`
	Rating     int       `db:"rating" json:"rating"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Review struct {
	ID            int64     `db:"id" json:"id"`
	ReviewerEmail string    `db:"reviewer_email" json:"reviewer_email"`
	ReviewedEmail string    `db:"reviewed_email" json:"reviewed_email"`
	ReviewText    string    `db:"review_text" json:"review_text"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Map types

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
	Popup string  `json:"popup"`
}

type MapView struct {
	Center  Point    `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// Request types

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type CreateRatingRequest struct {
	Rating int `json:"rating" validate:"min=1,max=5"`
}

type CreateReviewRequest struct {
	ReviewText string `json:"review_text" validate:"required"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

type NavigationResponse struct {
	LoggedIn bool     `json:"logged_in"`
	Email    string   `json:"email,omitempty"`
	Role     string   `json:"role,omitempty"`
	Views    []string `json:"views"`
}

type DonorViewResponse struct {
	Disclaimer string `json:"disclaimer"`
}

type PostListingResponse struct {
	ListingID int64  `json:"listing_id"`
	Message   string `json:"message"`
}

type ListingsResponse struct {
	Disclaimer string        `json:"disclaimer"`
	Listings   []FoodListing `json:"listings"`
	Map        MapView       `json:"map"`
	Message    string        `json:"message,omitempty"`
}

type ClaimResponse struct {
	ListingID int64  `json:"listing_id"`
	Message   string `json:"message"`
}

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type AnalyticsResponse struct {
	Summary string   `json:"summary"`
	Metrics []Metric `json:"metrics"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}
