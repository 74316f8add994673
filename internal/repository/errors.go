package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// DuplicateError reports a uniqueness collision on one or more contact
// fields. Fields holds "email" and/or "phone".
type DuplicateError struct {
	Fields []string
}

func (e *DuplicateError) Error() string {
	return "duplicate contact: " + strings.Join(e.Fields, ", ")
}

// Has reports whether the given field participated in the collision.
func (e *DuplicateError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
