package rules

import "errors"

// Sentinel errors for automation operations.
var (
	ErrNotFound        = errors.New("rules: automation not found")
	ErrAlreadyExists   = errors.New("rules: automation already exists")
	ErrInvalidDocument = errors.New("rules: invalid automation document")
	ErrInvalidID       = errors.New("rules: invalid automation identifier")
)
