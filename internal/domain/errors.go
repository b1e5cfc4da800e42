package domain

import "errors"

// Client-input failures. Handlers map these to 400 responses.
var (
	ErrInvalidLocation = errors.New("invalid location")
	ErrMissingFields   = errors.New("missing review body or location")
	ErrInvalidDate     = errors.New("invalid date")
)

var (
	// ErrDuplicateID is returned by a store when a review id is already taken.
	ErrDuplicateID = errors.New("duplicate review id")
	// ErrCorruptSeed marks seed data that cannot be trusted (bad timestamp, missing column).
	ErrCorruptSeed = errors.New("corrupt seed data")
)
