package complaint

import "errors"

var (
	// ErrNotFound is returned when no complaint matches the given id.
	ErrNotFound = errors.New("complaint not found")
	// ErrInvalidCoordinates is returned for a latitude outside [-90,90]
	// or a longitude outside [-180,180].
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	// ErrInvalidRadius is returned for a negative proximity radius.
	ErrInvalidRadius = errors.New("radius must be non-negative")
)
