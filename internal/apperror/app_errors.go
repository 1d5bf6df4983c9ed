package apperror

import "errors"

var (
	ErrOptionsNotFound  = errors.New("option set not found")
	ErrMalformedOptions = errors.New("option set is malformed")
	ErrInvalidCell      = errors.New("invalid cell")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExists    = errors.New("session already started")
)
