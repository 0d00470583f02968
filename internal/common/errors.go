// Package common defines sentinel errors shared by the session, ledger,
// pickup and rewards components. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Session errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("admin only")

	// Pickup request errors.
	ErrEmptySelection   = errors.New("select at least one type of waste")
	ErrUnknownWasteType = errors.New("unknown waste type")

	// Ledger and redemption errors.
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidAmount      = errors.New("points amount must not be negative")
	ErrAlreadyClaimed     = errors.New("reward already claimed")
	ErrUnknownProduct     = errors.New("unknown reward product")

	// Generic errors.
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)
