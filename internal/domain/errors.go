package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist in the farm collections.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing goat name, non-positive milk quantity).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
