package storage

import "github.com/pkg/errors"

// ErrNotFound is returned when the requested key or record does not exist.
var ErrNotFound = errors.New("not found")
