package models

import "errors"

// Sentinel errors shared by repositories and services. Callers match them with
// errors.Is; handlers translate them to HTTP status codes.
var (
	// ErrNotFound covers every missing-row case, including failed credential
	// checks, which are deliberately indistinguishable from an unknown email.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks a failed authorization check for an authenticated user.
	ErrForbidden = errors.New("forbidden")

	// ErrExists marks a uniqueness conflict, e.g. registering a taken email.
	ErrExists = errors.New("already exists")
)
