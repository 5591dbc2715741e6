package repositories

import "errors"

// ErrNotFound is returned by every repository when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write would break a uniqueness rule.
var ErrDuplicate = errors.New("duplicate record")
