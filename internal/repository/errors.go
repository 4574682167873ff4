// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish failure scenarios without
// parsing driver error strings.
package repository

import "errors"

// ErrNameTaken is returned when an insert would violate the normalized
// name uniqueness constraint on companies or rooms. Handlers translate it
// into an HTTP 409 response.
var ErrNameTaken = errors.New("name already taken")
