package brightsky

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time zone. It marshals as YYYY-MM-DD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether d names an existing day, i.e. NewDate leaves it unchanged.
func (d Date) Valid() bool {
	return NewDate(d.Year, d.Month, d.Day) == d
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnitType selects the unit system of returned measurements.
type UnitType string

const (
	UnitsDWD UnitType = "dwd"
	UnitsSI  UnitType = "si"
)

// DefaultUnits is what the API applies when no units parameter is sent.
const DefaultUnits = UnitsDWD

func (u UnitType) Valid() bool {
	return u == UnitsDWD || u == UnitsSI
}

func ParseUnitType(s string) (UnitType, error) {
	u := UnitType(s)
	if !u.Valid() {
		return "", invalid(ErrInvalidUnits, "units", s)
	}
	return u, nil
}

// RadarCompressionFormat controls how radar precipitation grids are encoded.
type RadarCompressionFormat string

const (
	FormatPlain      RadarCompressionFormat = "plain"
	FormatCompressed RadarCompressionFormat = "compressed"
	FormatBytes      RadarCompressionFormat = "bytes"
)

func (f RadarCompressionFormat) Valid() bool {
	switch f {
	case FormatPlain, FormatCompressed, FormatBytes:
		return true
	}
	return false
}

func ParseRadarCompressionFormat(s string) (RadarCompressionFormat, error) {
	f := RadarCompressionFormat(s)
	if !f.Valid() {
		return "", invalid(ErrInvalidFormat, "format", s)
	}
	return f, nil
}

// BoundingBox is a geographic rectangle in decimal degrees.
type BoundingBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

func (b BoundingBox) Validate() error {
	return ValidateBBox(b.South, b.West, b.North, b.East)
}

// String returns the wire form south,west,north,east.
func (b BoundingBox) String() string {
	return formatFloat(b.South) + "," + formatFloat(b.West) + "," +
		formatFloat(b.North) + "," + formatFloat(b.East)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
