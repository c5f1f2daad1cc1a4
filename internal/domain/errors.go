package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrInvalidProfile = errors.New("profile must be a JSON object")
)
