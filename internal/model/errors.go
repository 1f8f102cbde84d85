package model

import "errors"

var (
	// ErrNotFound marks operations against a timer id that does not exist.
	ErrNotFound = errors.New("timer not found")
	// ErrInvalidArgument marks validation failures detected before storage is touched.
	ErrInvalidArgument = errors.New("invalid argument")
)

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidArgument reports whether err is, or wraps, ErrInvalidArgument.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
