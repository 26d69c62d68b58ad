// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session gates access to the application.

A Gate registers users with the identity provider, logs them in against the
local user table and keeps an in-memory registry of open sessions:

	LoggedOut --Register--> LoggedOut
	LoggedOut --Login-----> LoggedIn{email, role}
	LoggedIn  --Logout----> LoggedOut

Login succeeds only when the user has a stored role; a registered user without
one gets ErrUnknownUser. Sessions never expire and are lost when the process
exits.
*/
package session
