// api/errors/data_errors.go
package errors

import "errors"

var (
	ErrSourceUnavailable   = errors.New("source unavailable")
	ErrUnknownResourceKind = errors.New("unknown resource kind")
	ErrGameNotFound        = errors.New("game not found")
	ErrInvalidLimit        = errors.New("invalid limit")
)
