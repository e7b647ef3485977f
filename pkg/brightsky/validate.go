package brightsky

import (
	"github.com/go-playground/validator/v10"
)

// MaxDistance is the largest search radius in meters the API accepts.
const (
	MaxDistance = 500000
	distanceTag = "gte=0,lte=500000"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Replace the built-in string-oriented tags with plain range checks on floats.
	// NaN compares false on both sides and is rejected.
	validate.RegisterValidation("latitude", validateLatitude)
	validate.RegisterValidation("longitude", validateLongitude)
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLongitude(fl validator.FieldLevel) bool {
	lon := fl.Field().Float()
	return lon >= -180.0 && lon <= 180.0
}

// ValidateLatitude fails with ErrInvalidLatitude unless -90 <= v <= 90.
func ValidateLatitude(v float64) error {
	return validateCoordinate("lat", v, "latitude", ErrInvalidLatitude)
}

// ValidateLongitude fails with ErrInvalidLongitude unless -180 <= v <= 180.
func ValidateLongitude(v float64) error {
	return validateCoordinate("lon", v, "longitude", ErrInvalidLongitude)
}

func validateCoordinate(field string, v float64, tag string, kind error) error {
	if err := validate.Var(v, tag); err != nil {
		return invalid(kind, field, v)
	}
	return nil
}

// ValidateBBox checks every corner as a coordinate, then the ordering of the box.
func ValidateBBox(south, west, north, east float64) error {
	corners := []struct {
		field string
		value float64
		tag   string
		kind  error
	}{
		{"bbox.south", south, "latitude", ErrInvalidLatitude},
		{"bbox.west", west, "longitude", ErrInvalidLongitude},
		{"bbox.north", north, "latitude", ErrInvalidLatitude},
		{"bbox.east", east, "longitude", ErrInvalidLongitude},
	}
	for _, c := range corners {
		if err := validateCoordinate(c.field, c.value, c.tag, c.kind); err != nil {
			return err
		}
	}

	if !(south < north) || !(west < east) {
		return invalid(ErrInvalidBoundingBox, "bbox", BoundingBox{South: south, West: west, North: north, East: east})
	}
	return nil
}

// ValidateDate fails with ErrInvalidDate when d is set but is not a real day,
// such as 2025-02-30 built from literal fields.
func ValidateDate(field string, d Date) error {
	if d.IsZero() || d.Valid() {
		return nil
	}
	return invalid(ErrInvalidDate, field, d)
}

// ValidateDateOrder fails with ErrInvalidDateRange when lastDate is set and precedes date.
// A zero lastDate means no range end was given.
func ValidateDateOrder(date, lastDate Date) error {
	if lastDate.IsZero() {
		return nil
	}
	if lastDate.Before(date) {
		return invalid(ErrInvalidDateRange, "last_date", lastDate)
	}
	return nil
}

func validateDistance(field string, meters int, kind error) error {
	if err := validate.Var(meters, distanceTag); err != nil {
		return invalid(kind, field, meters)
	}
	return nil
}
