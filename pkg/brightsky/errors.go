package brightsky

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLatitude    = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude   = errors.New("longitude must be between -180 and 180")
	ErrInvalidBoundingBox = errors.New("bounding box must satisfy south < north and west < east")
	ErrMissingLocation    = errors.New("location is required but not set")
	ErrInvalidDate        = errors.New("date must be a real calendar day")
	ErrInvalidDateRange   = errors.New("last_date must not precede date")
	ErrMissingDate        = errors.New("date is required but not set")
	ErrInvalidMaxDistance = errors.New("max_dist must be between 0 and 500000")
	ErrInvalidDistance    = errors.New("distance must be between 0 and 500000")
	ErrInvalidUnits       = errors.New("units must be one of: si dwd")
	ErrInvalidFormat      = errors.New("format must be one of: plain compressed bytes")
	ErrURLConstruction    = errors.New("could not construct url")
)

// ValidationError reports which field failed and the value it held.
// Kind is one of the Err* sentinels and is what errors.Is matches.
type ValidationError struct {
	Kind  error
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Kind.Error()
	}
	if e.Value == nil {
		return fmt.Sprintf("%s: %v", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %v, got %v", e.Field, e.Kind, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func invalid(kind error, field string, value any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Value: value}
}

// URLError is returned when a base URL and a query path cannot be combined.
type URLError struct {
	Base string
	Err  error
}

func (e *URLError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v from base %q", ErrURLConstruction, e.Base)
	}
	return fmt.Sprintf("%v from base %q: %v", ErrURLConstruction, e.Base, e.Err)
}

func (e *URLError) Is(target error) bool {
	return target == ErrURLConstruction
}

func (e *URLError) Unwrap() error {
	return e.Err
}
