package repository

import "errors"

// ErrNotFound covers both a row that does not exist and a row owned by another
// user. Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when signup hits the unique email constraint.
var ErrDuplicateEmail = errors.New("email already registered")
