package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrNoBids          = errors.New("no bids found for listing")
)

// business logic errors
var (
	ErrInvalidListing     = errors.New("invalid listing")
	ErrInvalidBid         = errors.New("invalid bid")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrOwnListingBid      = errors.New("cannot bid on own listing")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrSessionNotFound    = errors.New("session not found")
)
