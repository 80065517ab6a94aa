package refashionerrors

import "errors"

// Storage-level errors
var (
	ErrKeyNotFound = errors.New("key not found")
)

// Container errors
var (
	ErrInvalidCategory    = errors.New("invalid bag category")
	ErrBagItemNotFound    = errors.New("bag item not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidAmount      = errors.New("invalid points amount")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Marketplace errors
var (
	ErrInvalidListing  = errors.New("invalid listing")
	ErrListingNotFound = errors.New("listing not found")
)

// Remote backend errors
var (
	ErrUnrecognizedResponse = errors.New("unrecognized response shape")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrRemoteUnavailable    = errors.New("remote backend unavailable")
)
