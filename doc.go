// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the foodshare API server.

foodshare coordinates community food donations: donors post surplus food,
receivers browse it on a map and claim it, and an analytics view counts the
meals saved.

# Starting the Server

Only a session secret is required. By default the server uses an embedded
SQLite database in app.db:

	SESSION_SECRET=... go run .

Settings may also come from a .env file in the working directory, or flags:

	go run . -p 3318 -t postgres -d "postgres://..." -session-secret ...

# Configuration

See package cliparse for the full list. The main switches:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - IDENTITY_PROVIDER (-identity): local (default) or firebase
  - PHOTO_STORE (-photos): disk (default) or s3
  - SMTP_HOST (-smtp-host): enables claim notification mail
  - ADMIN_KEY (-admin-key): enables role assignment

# Architecture

  - handlers, router, middleware: HTTP surface on Go 1.22+ routing
  - session: registration, login and the session registry
  - lifecycle: post, browse, claim and analytics
  - store, db: SQL persistence
  - identity, geocode, photos, notify, mapview: external service adapters
  - auth: session tokens and admin keys
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
