// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the only owner of persisted state: users, food listings,
ratings and reviews.

# Usage

	s := store.New(conn)
	if err := s.InitializeSchema(ctx); err != nil {
		log.Fatal(err)
	}

	id, err := s.CreateFoodListing(ctx, models.NewFoodListing{...})
	listings, err := s.ListUnclaimedFoodListings(ctx)
	err = s.ClaimFoodListing(ctx, id, "r@x.com")

Every operation is a single statement. Queries are written with ? placeholders
and rebound by sqlx for the connection's driver, so the same code runs on
SQLite and PostgreSQL.

# Claims

ClaimFoodListing is unconditional. Claiming a listing that is already claimed
reassigns it, and claiming a missing id changes nothing; both return nil.
ClaimUnclaimedFoodListing is the conditional variant and reports whether this
call performed the claim.

# Errors

  - CreateUser reports an existing email as (false, nil)
  - GetUserRole reports an unknown user or NULL role as found=false
  - GetFoodListing returns ErrNotFound
  - every database failure is a *StorageError carrying the operation name
*/
package store
