// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open picks the driver from the database type and pings the connection:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

sqlite uses modernc.org/sqlite (pure Go, no cgo) and is limited to one open
connection. postgres uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables in the dialect of the connection:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: email primary key, nullable role
  - food_listings: donations and their claim state
  - ratings: 1-5 ratings between users
  - reviews: free-text reviews between users

There are no foreign keys; emails are stored as plain references.
*/
package db
