package errors

import "errors"

var ErrInvalidSubscription = errors.New("invalid subscription")
