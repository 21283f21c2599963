package helpers

import (
	"errors"

	"auction-site/internal/auctionerrors"
	"auction-site/utils"
)

// Fixed page messages
const (
	MsgListingInvalid = "Cannot create new listing. Please try again."
	MsgBidInvalid     = "Please enter a valid bid amount."
	MsgBidTooLow      = "Your bid must meet the starting price and exceed the current highest bid."
	MsgOwnListingBid  = "You cannot bid on your own listing."
	MsgInternalError  = "Something went wrong. Please try again."
)

// MapBidError maps a bid placement error to the message rendered on the
// listing page
func MapBidError(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrOwnListingBid):
		return MsgOwnListingBid
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return MsgBidTooLow
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return MsgBidInvalid
	default:
		return MsgInternalError
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
