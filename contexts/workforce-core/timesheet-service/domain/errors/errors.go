package errors

import "errors"

var (
	ErrInvalidRequest        = errors.New("invalid timesheet request")
	ErrTimesheetNotFound     = errors.New("timesheet not found")
	ErrContractorNotFound    = errors.New("contractor not found")
	ErrContractorNotApproved = errors.New("contractor not approved")
	ErrInvalidHours          = errors.New("invalid hours")
	ErrEmptyTimesheet        = errors.New("empty timesheet")
	ErrRateNotSet            = errors.New("pay rate not set")
	ErrForbidden             = errors.New("forbidden")
	ErrTimeout               = errors.New("timesheet write timed out")
	ErrStorage               = errors.New("blob storage failure")
)
