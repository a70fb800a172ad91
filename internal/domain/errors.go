package domain

import "errors"

var (
	ErrNotFound     = errors.New("booking: not found")
	ErrUnauthorized = errors.New("booking: unauthorized")
	ErrForbidden    = errors.New("booking: forbidden")
	ErrNoData       = errors.New("booking: no data in response")
	ErrInvalidID    = errors.New("invalid id")
	ErrValidation   = errors.New("validation failed")
)
