package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrOrgNotFound        = errors.New("organization not found")
	ErrContractorNotFound = errors.New("contractor not found")
	ErrContractorExists   = errors.New("contractor already applied for this organization")
	ErrStateConflict      = errors.New("approval state conflict")
	ErrInvalidRate        = errors.New("pay rate must be greater than zero")
	ErrForbidden          = errors.New("forbidden")
	ErrTimeout            = errors.New("durability write timed out")
)
