package repository

import "errors"

// ErrNotFound is returned when a requested setting does not exist.
var ErrNotFound = errors.New("not found")
