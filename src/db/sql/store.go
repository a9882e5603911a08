package db

import "errors"

// ErrNotFound is returned when a row does not exist or belongs to a
// different user. Handlers map it to a 404.
var ErrNotFound = errors.New("not found")
