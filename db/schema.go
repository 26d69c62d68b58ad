// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names registered by modernc.org/sqlite and lib/pq
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database and verifies the connection.
// dbType is "sqlite" or "postgres".
func Open(dbType, url string) (*sqlx.DB, error) {
	var driver string
	switch dbType {
	case "sqlite":
		driver = DriverSQLite
	case "postgres":
		driver = DriverPostgres
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serialises writers; one connection avoids SQLITE_BUSY and keeps
	// in-memory databases shared across statements.
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == DriverPostgres {
		schema = postgresSchema
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const sqliteSchema = `
-- Users and their roles
CREATE TABLE IF NOT EXISTS users (
    email TEXT PRIMARY KEY,
    role TEXT
);

-- Food donations
CREATE TABLE IF NOT EXISTS food_listings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    donor_email TEXT,
    food_name TEXT,
    quantity TEXT,
    expiry_date DATE,
    pickup_location TEXT,
    photo_url TEXT,
    is_claimed BOOLEAN DEFAULT 0,
    receiver_email TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_food_listings_claimed ON food_listings(is_claimed, created_at);

-- User trust
CREATE TABLE IF NOT EXISTS ratings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    rater_email TEXT,
    rated_email TEXT,
    rating INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_ratings_rated ON ratings(rated_email);

-- User feedback
CREATE TABLE IF NOT EXISTS reviews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    reviewer_email TEXT,
    reviewed_email TEXT,
    review_text TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reviews_reviewed ON reviews(reviewed_email);
`

const postgresSchema = `
-- Users and their roles
CREATE TABLE IF NOT EXISTS users (
    email TEXT PRIMARY KEY,
    role TEXT
);

-- Food donations
CREATE TABLE IF NOT EXISTS food_listings (
    id BIGSERIAL PRIMARY KEY,
    donor_email TEXT,
    food_name TEXT,
    quantity TEXT,
    expiry_date DATE,
    pickup_location TEXT,
    photo_url TEXT,
    is_claimed BOOLEAN DEFAULT FALSE,
    receiver_email TEXT,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_food_listings_claimed ON food_listings(is_claimed, created_at);

-- User trust
CREATE TABLE IF NOT EXISTS ratings (
    id BIGSERIAL PRIMARY KEY,
    rater_email TEXT,
    rated_email TEXT,
    rating INTEGER,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_ratings_rated ON ratings(rated_email);

-- User feedback
CREATE TABLE IF NOT EXISTS reviews (
    id BIGSERIAL PRIMARY KEY,
    reviewer_email TEXT,
    reviewed_email TEXT,
    review_text TEXT,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_reviews_reviewed ON reviews(reviewed_email);
`
