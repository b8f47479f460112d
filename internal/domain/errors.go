package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers transport failures, non-2xx statuses and timeouts.
	ErrNetwork = errors.New("network error")
	// ErrParse means the upstream answered but an expected field was missing.
	ErrParse = errors.New("parse error")

	ErrValidation        = errors.New("validation error")
	ErrNoData            = errors.New("no data available")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("concurrent modification")
)
