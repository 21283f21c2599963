package helpers

import (
	"errors"

	"auction-site/internal/auctionerrors"
	"auction-site/utils"
)

// Fixed page messages
const (
	MsgInvalidCredentials  = "Invalid username and/or password."
	MsgPasswordMismatch    = "Passwords must match."
	MsgUsernameTaken       = "Username already taken."
	MsgRegistrationInvalid = "All fields are required."
	MsgInternalError       = "Something went wrong. Please try again."
)

// MapRegisterError maps a registration error to the message rendered on the
// registration form
func MapRegisterError(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, auctionerrors.ErrUsernameTaken):
		return MsgUsernameTaken
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return MsgRegistrationInvalid
	default:
		return MsgInternalError
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
