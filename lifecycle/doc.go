// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle implements the donor and receiver journeys.

A listing moves through one transition:

	Post --> unclaimed --Claim--> claimed

Post validates the form and stores the listing for the session's user. Browse
returns the unclaimed listings with a map of the ones whose pickup address the
geocoder could resolve. Claim marks a listing as taken and e-mails the donor;
a failed notification is logged and does not fail the claim.

By default claims are unconditional and the last claimer wins. With strict
claims a second claim returns ErrAlreadyClaimed.
*/
package lifecycle
