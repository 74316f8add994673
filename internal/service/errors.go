package service

import "errors"

// ErrInvalidID reports a delete request whose id is not a well-formed UUID.
var ErrInvalidID = errors.New("invalid contact id")

// ValidationError carries per-field messages for a rejected candidate.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// DuplicateError reports which unique fields an existing record collides
// on. Fields maps "email"/"phone" to a user-facing message.
type DuplicateError struct {
	Fields map[string]string
}

func (e *DuplicateError) Error() string { return "duplicate contact" }
