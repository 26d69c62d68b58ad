// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity provides credential creation and verification.

# Providers

A Provider creates accounts; a Verifier checks passwords. Both adapters
implement both interfaces:

  - Local: bcrypt hashes in process memory (development, tests)
  - Firebase: Identity Toolkit REST API (accounts:signUp, accounts:signInWithPassword)

	idp := identity.NewFirebase(cfg.FirebaseAPIKey, "", nil)
	principal, err := idp.CreateCredential(ctx, email, password)

# Errors

Rejections are *AuthError values whose Code is a Firebase error code
(EMAIL_EXISTS, INVALID_EMAIL, WEAK_PASSWORD, MISSING_PASSWORD,
INVALID_LOGIN_CREDENTIALS) and whose Error() text is meant to be shown to
users verbatim. Transport failures are ordinary wrapped errors.
*/
package identity
