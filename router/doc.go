// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the foodshare API.

# Route Registration

NewRouter builds the session gate and listing service from the given adapters
and returns a configured http.ServeMux:

	mux := router.NewRouter(router.Deps{
		Store:    store.New(conn),
		Identity: identity.NewLocal(),
		Photos:   photos.NewDisk(cfg.UploadDir),
		Geocoder: geocode.NewNominatim(cfg.GeocoderURL, cfg.GeocoderUserAgent, nil),
		Notifier: notify.Nop{},
	}, cfg)

# Endpoints

Public:

	GET  /health
	GET  /
	POST /auth/register - Create account (no role yet)
	POST /auth/login    - Open a session, returns a bearer token
	GET  /views         - Views available to the caller

Session required (Authorization: Bearer <token>):

	POST /auth/logout
	GET  /donor                  - Donor view
	POST /listings               - Post food (multipart form)
	GET  /listings               - Unclaimed listings and map data
	GET  /listings/map           - HTML map page
	POST /listings/{id}/claim    - Claim a listing
	GET  /analytics              - Community impact
	POST /users/{email}/ratings  - Rate a user
	GET  /users/{email}/ratings
	POST /users/{email}/reviews  - Review a user
	GET  /users/{email}/reviews

Admin (X-Admin-Key):

	PUT /admin/users/{email}/role
*/
package router
