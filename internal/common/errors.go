// Package common defines sentinel errors shared by the client flows and the
// seeding tool. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository / transport errors.
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("backend unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Input validation errors, raised before any network call.
	ErrInvalidCode  = errors.New("verification code must be exactly 8 digits")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidInput = errors.New("invalid input")

	// Verification flow errors.
	ErrCodeRejected    = errors.New("verification code rejected")
	ErrIdentityMissing = errors.New("identity missing after code exchange")
	ErrUserCreate      = errors.New("user record creation failed")
	ErrSessionCreate   = errors.New("session record creation failed")

	// Session / profile state.
	ErrNoSession       = errors.New("no active session")
	ErrProfileMissing  = errors.New("user profile missing")
	ErrNotVerified     = errors.New("email not verified")
	ErrStorageDisabled = errors.New("object storage not configured")

	// Catalog seeding.
	ErrCatalogUnconfigured = errors.New("catalog contains unconfigured entries")
)
