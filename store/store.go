// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/foodshare/db"
	"github.com/danielhkuo/foodshare/models"
)

var ErrNotFound = errors.New("record not found")

// StorageError wraps a failure of the underlying database
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store.%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(conn *sqlx.DB) *Store {
	return &Store{db: conn, now: time.Now}
}

// InitializeSchema ensures all tables exist
func (s *Store) InitializeSchema(ctx context.Context) error {
	if err := db.CreateSchema(s.db); err != nil {
		return &StorageError{Op: "InitializeSchema", Err: err}
	}
	return nil
}

// CreateUser inserts a user with an optional role.
// Returns false without error when the email is already registered.
func (s *Store) CreateUser(ctx context.Context, email string, role *string) (bool, error) {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO users (email, role) VALUES (?, ?)
	`), email, role)
	if err != nil {
		if isDuplicateKey(err) {
			return false, nil
		}
		return false, &StorageError{Op: "CreateUser", Err: err}
	}
	return true, nil
}

// GetUserRole returns the stored role. found is false when the user does not
// exist or has no role yet.
func (s *Store) GetUserRole(ctx context.Context, email string) (role string, found bool, err error) {
	var stored sql.NullString
	err = s.db.GetContext(ctx, &stored, s.db.Rebind(`
		SELECT role FROM users WHERE email = ?
	`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Op: "GetUserRole", Err: err}
	}
	if !stored.Valid {
		return "", false, nil
	}
	return stored.String, true, nil
}

// UpdateUserRole sets the role; unknown emails are ignored
func (s *Store) UpdateUserRole(ctx context.Context, email, role string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE users SET role = ? WHERE email = ?
	`), role, email)
	if err != nil {
		return &StorageError{Op: "UpdateUserRole", Err: err}
	}
	return nil
}

// CreateFoodListing inserts an unclaimed listing and returns its id
func (s *Store) CreateFoodListing(ctx context.Context, l models.NewFoodListing) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO food_listings
			(donor_email, food_name, quantity, expiry_date, pickup_location, photo_url, is_claimed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), l.DonorEmail, l.FoodName, l.Quantity, l.ExpiryDate, l.PickupLocation, l.PhotoURL, false, s.now().UTC()).Scan(&id)
	if err != nil {
		return 0, &StorageError{Op: "CreateFoodListing", Err: err}
	}
	return id, nil
}

const listingColumns = `id, donor_email, food_name, quantity, expiry_date, pickup_location,
		photo_url, is_claimed, receiver_email, created_at`

// GetFoodListing returns one listing or ErrNotFound
func (s *Store) GetFoodListing(ctx context.Context, id int64) (models.FoodListing, error) {
	var l models.FoodListing
	err := s.db.GetContext(ctx, &l, s.db.Rebind(`
		SELECT `+listingColumns+`
		FROM food_listings
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FoodListing{}, ErrNotFound
	}
	if err != nil {
		return models.FoodListing{}, &StorageError{Op: "GetFoodListing", Err: err}
	}
	return l, nil
}

// ListUnclaimedFoodListings returns every unclaimed listing, newest first
func (s *Store) ListUnclaimedFoodListings(ctx context.Context) ([]models.FoodListing, error) {
	listings := []models.FoodListing{}
	err := s.db.SelectContext(ctx, &listings, s.db.Rebind(`
		SELECT `+listingColumns+`
		FROM food_listings
		WHERE is_claimed = ?
		ORDER BY created_at DESC, id DESC
	`), false)
	if err != nil {
		return nil, &StorageError{Op: "ListUnclaimedFoodListings", Err: err}
	}
	return listings, nil
}

// ClaimFoodListing marks the listing claimed by receiverEmail.
// The update is unconditional: an already claimed listing is reassigned and a
// missing id affects no rows. Neither case is an error.
func (s *Store) ClaimFoodListing(ctx context.Context, id int64, receiverEmail string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE food_listings SET is_claimed = ?, receiver_email = ? WHERE id = ?
	`), true, receiverEmail, id)
	if err != nil {
		return &StorageError{Op: "ClaimFoodListing", Err: err}
	}
	return nil
}

// ClaimUnclaimedFoodListing claims the listing only if it is still unclaimed.
// Returns true when this call performed the claim.
func (s *Store) ClaimUnclaimedFoodListing(ctx context.Context, id int64, receiverEmail string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE food_listings SET is_claimed = ?, receiver_email = ?
		WHERE id = ? AND is_claimed = ?
	`), true, receiverEmail, id, false)
	if err != nil {
		return false, &StorageError{Op: "ClaimUnclaimedFoodListing", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &StorageError{Op: "ClaimUnclaimedFoodListing", Err: err}
	}
	return n == 1, nil
}

// CountClaimedListings returns the number of claimed listings
func (s *Store) CountClaimedListings(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, s.db.Rebind(`
		SELECT COUNT(*) FROM food_listings WHERE is_claimed = ?
	`), true)
	if err != nil {
		return 0, &StorageError{Op: "CountClaimedListings", Err: err}
	}
	return count, nil
}

// isDuplicateKey reports whether err is a primary key or unique violation
func isDuplicateKey(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// Extended codes keep the primary code in the low byte
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
