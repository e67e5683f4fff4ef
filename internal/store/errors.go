package store

import "errors"

var (
	// ErrTitleRequired is returned when a write would leave a todo with an
	// empty title. It is surfaced before any database access is attempted.
	ErrTitleRequired = errors.New("title is required")
)
