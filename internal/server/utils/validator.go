package utils

import (
	"errors"
	"fmt"

	"github.com/vzahanych/brightsky/internal/params"
	"github.com/vzahanych/brightsky/pkg/brightsky"
)

// ValidationError is the JSON body returned for a rejected query.
type ValidationError struct {
	Error string      `json:"error"`
	Code  string      `json:"code"`
	Field string      `json:"field,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

var errorCodes = []struct {
	kind error
	code string
}{
	{brightsky.ErrInvalidLatitude, "INVALID_LATITUDE"},
	{brightsky.ErrInvalidLongitude, "INVALID_LONGITUDE"},
	{brightsky.ErrInvalidBoundingBox, "INVALID_BOUNDING_BOX"},
	{brightsky.ErrMissingLocation, "MISSING_LOCATION"},
	{brightsky.ErrMissingDate, "MISSING_DATE"},
	{brightsky.ErrInvalidDate, "INVALID_DATE"},
	{brightsky.ErrInvalidDateRange, "INVALID_DATE_RANGE"},
	{brightsky.ErrInvalidMaxDistance, "INVALID_MAX_DISTANCE"},
	{brightsky.ErrInvalidDistance, "INVALID_DISTANCE"},
	{brightsky.ErrInvalidUnits, "INVALID_UNITS"},
	{brightsky.ErrInvalidFormat, "INVALID_FORMAT"},
	{brightsky.ErrURLConstruction, "URL_CONSTRUCTION"},
	{params.ErrInvalidParameter, "INVALID_PARAMS"},
}

// ErrorCode returns the stable code for a query error, or "" when err is not one.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.kind) {
			return ec.code
		}
	}
	return ""
}

// FormatValidationError turns a query-building error into a response body.
// ok is false for errors that are not caused by the request.
func FormatValidationError(err error) (ValidationError, bool) {
	code := ErrorCode(err)
	if code == "" || code == "URL_CONSTRUCTION" {
		return ValidationError{}, false
	}

	out := ValidationError{Error: err.Error(), Code: code}

	var verr *brightsky.ValidationError
	if errors.As(err, &verr) {
		out.Error = verr.Kind.Error()
		out.Field = verr.Field
		if verr.Value != nil {
			out.Value = formatValue(verr.Value)
		}
	}
	return out, true
}

func formatValue(v interface{}) interface{} {
	switch v := v.(type) {
	case float64, int, int64, string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
