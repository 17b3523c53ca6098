package repository

import "errors"

// ErrNotFound is returned when a quote id or the project_multipliers row
// does not exist.
var ErrNotFound = errors.New("not found")
