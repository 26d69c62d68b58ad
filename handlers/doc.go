// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the foodshare API.

# Handler Types

  - AuthHandler: register, login, logout
  - ListingHandler: donor view, posting, the receiver board and claims
  - AnalyticsHandler: community impact metrics
  - UserHandler: admin role assignment, ratings and reviews
  - Views: navigation for the current caller

Handlers that act for a user read the session placed in the request context
by middleware.SessionAuth.

# Errors

Domain errors map to status codes in one place:

	*lifecycle.ValidationError  400, with the missing fields
	*identity.AuthError         400, provider message
	session.ErrUnknownUser      401
	lifecycle.ErrAlreadyClaimed 409
	store.ErrNotFound           404
	anything else               500, logged
*/
package handlers
