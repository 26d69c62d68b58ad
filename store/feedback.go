// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/foodshare/models"
)

// AddRating appends a rating. The 1-5 range is not enforced here.
func (s *Store) AddRating(ctx context.Context, raterEmail, ratedEmail string, rating int) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO ratings (rater_email, rated_email, rating, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), raterEmail, ratedEmail, rating, s.now().UTC()).Scan(&id)
	if err != nil {
		return 0, &StorageError{Op: "AddRating", Err: err}
	}
	return id, nil
}

// ListRatings returns ratings received by ratedEmail, newest first
func (s *Store) ListRatings(ctx context.Context, ratedEmail string) ([]models.Rating, error) {
	ratings := []models.Rating{}
	err := s.db.SelectContext(ctx, &ratings, s.db.Rebind(`
		SELECT id, rater_email, rated_email, rating, created_at
		FROM ratings
		WHERE rated_email = ?
		ORDER BY created_at DESC, id DESC
	`), ratedEmail)
	if err != nil {
		return nil, &StorageError{Op: "ListRatings", Err: err}
	}
	return ratings, nil
}

// AddReview appends a review
func (s *Store) AddReview(ctx context.Context, reviewerEmail, reviewedEmail, text string) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO reviews (reviewer_email, reviewed_email, review_text, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), reviewerEmail, reviewedEmail, text, s.now().UTC()).Scan(&id)
	if err != nil {
		return 0, &StorageError{Op: "AddReview", Err: err}
	}
	return id, nil
}

// ListReviews returns reviews received by reviewedEmail, newest first
func (s *Store) ListReviews(ctx context.Context, reviewedEmail string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.SelectContext(ctx, &reviews, s.db.Rebind(`
		SELECT id, reviewer_email, reviewed_email, review_text, created_at
		FROM reviews
		WHERE reviewed_email = ?
		ORDER BY created_at DESC, id DESC
	`), reviewedEmail)
	if err != nil {
		return nil, &StorageError{Op: "ListReviews", Err: err}
	}
	return reviews, nil
}
