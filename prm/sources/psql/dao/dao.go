package dao

import "errors"

// ErrNotFound is returned when a row is absent; handlers map it to 404.
var ErrNotFound = errors.New("not found")
