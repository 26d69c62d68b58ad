// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens and admin key checks.

# Session Tokens

Session tokens are HS256 JWTs signed with the configured session secret:

	token, err := auth.IssueSessionToken(sess.ID, sess.Email, sess.Role, secret, sess.CreatedAt)
	claims, err := auth.ParseSessionToken(token, secret)

The token ID (jti) is the session ID. A token only proves which session it
names; the session registry decides whether that session is still logged in.
Tokens have no expiry.

Clients send the token as a bearer token:

	Authorization: Bearer <token>

	token, err := auth.BearerToken(r)

# Admin Keys

Role assignment is an admin operation authenticated with the X-Admin-Key
header:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

Keys are compared in constant time. When no admin key is configured every
request is rejected.
*/
package auth
