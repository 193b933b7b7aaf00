package http

import "errors"

var (
	errInvalidPayload  = errors.New("invalid payload")
	errUnsupportedType = errors.New("unsupported message type")
	errNotLoggedIn     = errors.New("not logged in")
	errForbidden       = errors.New("operation not permitted for this role")
)
