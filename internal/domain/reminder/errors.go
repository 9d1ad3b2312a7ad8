package reminder

import "errors"

var (
	ErrNotFound          = errors.New("reminder not found")
	ErrInvalidTime       = errors.New("invalid date/time, use YYYY-MM-DD HH:MM")
	ErrUnknownTimezone   = errors.New("unknown time zone")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	ErrEmptyName         = errors.New("reminder name is required")
)
