package errors

import "errors"

var (
	ErrAuthFailed    = errors.New("authentication failed")
	ErrForbidden     = errors.New("forbidden")
	ErrUnknownAction = errors.New("unknown action")
)
