// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"testing"
	"time"
)

func TestRatings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	if _, err := s.AddRating(ctx, "r@x.com", "d@x.com", 5); err != nil {
		t.Fatalf("AddRating() error = %v", err)
	}
	// Out of range values are stored as given
	if _, err := s.AddRating(ctx, "q@x.com", "d@x.com", 9); err != nil {
		t.Fatalf("AddRating() error = %v", err)
	}
	s.AddRating(ctx, "r@x.com", "other@x.com", 1)

	ratings, err := s.ListRatings(ctx, "d@x.com")
	if err != nil {
		t.Fatalf("ListRatings() error = %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(ratings))
	}
	if ratings[0].Rating != 9 || ratings[0].RaterEmail != "q@x.com" {
		t.Errorf("expected newest rating first, got %+v", ratings[0])
	}
	if ratings[1].Rating != 5 || ratings[1].RatedEmail != "d@x.com" {
		t.Errorf("unexpected second rating %+v", ratings[1])
	}
}

func TestReviews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddReview(ctx, "r@x.com", "d@x.com", "Very kind, bread was fresh")
	if err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}
	if id == 0 {
		t.Error("expected a generated id")
	}

	reviews, err := s.ListReviews(ctx, "d@x.com")
	if err != nil {
		t.Fatalf("ListReviews() error = %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	if reviews[0].ReviewText != "Very kind, bread was fresh" || reviews[0].ReviewerEmail != "r@x.com" {
		t.Errorf("unexpected review %+v", reviews[0])
	}

	none, err := s.ListReviews(ctx, "nobody@x.com")
	if err != nil || len(none) != 0 {
		t.Errorf("expected no reviews, got %v (err %v)", none, err)
	}
}
