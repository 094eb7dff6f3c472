// Package repository holds the error contract shared by the per-entity
// repository packages.
package repository

import "errors"

// ErrNotFound is returned when a record does not exist or is
// soft-deleted. Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint (user email) is
// violated.
var ErrDuplicate = errors.New("record already exists")
