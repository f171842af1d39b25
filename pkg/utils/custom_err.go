package utils

import "errors"

var (
	ErrMemberNotFound          = errors.New("member not found")
	ErrInvalidCheckInToken     = errors.New("invalid check-in token")
	ErrInvalidAlertToken       = errors.New("invalid alert token")
	ErrCannotRepeatCheckIn     = errors.New("member has no check-in to repeat")
	ErrInvalidIsAttribute      = errors.New("invalid is-attribute")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrInvalidSession          = errors.New("invalid session")
	ErrInvalidJobsToken        = errors.New("invalid jobs api token")
	ErrInvalidSlackSignature   = errors.New("invalid slack request signature")
	ErrNoLocationParams        = errors.New("no location params provided")
	ErrLocationProvider        = errors.New("location provider error")
	ErrMessageDelivery         = errors.New("message delivery failed")
	ErrDatabaseError           = errors.New("database error")
)
