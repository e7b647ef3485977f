package brightsky

import (
	"net/url"
	"time"
)

// queryModel carries the accessors every endpoint query shares. Its fields are
// set once by a builder and never written again.
type queryModel struct {
	f fields
}

func (m *queryModel) AppendQuery(dst []byte) []byte {
	return m.f.appendTo(dst)
}

// Location returns a copy of the selected location, or nil when none was set.
func (m *queryModel) Location() Location {
	return cloneLocation(m.f.location)
}

// TZ returns the IANA time zone passed through to the API, or "".
func (m *queryModel) TZ() string {
	return m.f.tz
}

// CurrentWeatherQuery is a validated request for /current_weather.
type CurrentWeatherQuery struct {
	queryModel
}

func (q *CurrentWeatherQuery) Path() string { return PathCurrentWeather }

func (q *CurrentWeatherQuery) Encode() string { return Encode(q) }

func (q *CurrentWeatherQuery) URL(base string) (*url.URL, error) { return URL(base, q) }

func (q *CurrentWeatherQuery) URLString(base string) string { return URLString(base, q) }

func (q *CurrentWeatherQuery) MaxDist() (int, bool) { return optionalInt(q.f.maxDist) }

// Units reports the unit system the response will use, DefaultUnits if unset.
func (q *CurrentWeatherQuery) Units() UnitType { return q.f.effectiveUnits() }

// WeatherQuery is a validated request for /weather.
type WeatherQuery struct {
	queryModel
}

func (q *WeatherQuery) Path() string { return PathWeather }

func (q *WeatherQuery) Encode() string { return Encode(q) }

func (q *WeatherQuery) URL(base string) (*url.URL, error) { return URL(base, q) }

func (q *WeatherQuery) URLString(base string) string { return URLString(base, q) }

func (q *WeatherQuery) Date() Date { return q.f.date }

// LastDate returns the end of the range and whether one was set.
func (q *WeatherQuery) LastDate() (Date, bool) { return q.f.lastDate, !q.f.lastDate.IsZero() }

func (q *WeatherQuery) MaxDist() (int, bool) { return optionalInt(q.f.maxDist) }

func (q *WeatherQuery) Units() UnitType { return q.f.effectiveUnits() }

// RadarQuery is a validated request for /radar.
type RadarQuery struct {
	queryModel
}

func (q *RadarQuery) Path() string { return PathRadar }

func (q *RadarQuery) Encode() string { return Encode(q) }

func (q *RadarQuery) URL(base string) (*url.URL, error) { return URL(base, q) }

func (q *RadarQuery) URLString(base string) string { return URLString(base, q) }

// DateTime returns the requested point in time; the zero time means latest.
func (q *RadarQuery) DateTime() time.Time { return q.f.datetime }

func (q *RadarQuery) BBox() (BoundingBox, bool) {
	if q.f.bbox == nil {
		return BoundingBox{}, false
	}
	return *q.f.bbox, true
}

func (q *RadarQuery) Distance() (int, bool) { return optionalInt(q.f.distance) }

// Format reports the precipitation encoding, FormatCompressed if unset.
func (q *RadarQuery) Format() RadarCompressionFormat {
	if q.f.format == "" {
		return FormatCompressed
	}
	return q.f.format
}

// AlertsQuery is a validated request for /alerts.
type AlertsQuery struct {
	queryModel
}

func (q *AlertsQuery) Path() string { return PathAlerts }

func (q *AlertsQuery) Encode() string { return Encode(q) }

func (q *AlertsQuery) URL(base string) (*url.URL, error) { return URL(base, q) }

func (q *AlertsQuery) URLString(base string) string { return URLString(base, q) }

// Global reports whether the query asks for all alerts rather than one location.
func (q *AlertsQuery) Global() bool { return q.f.location == nil }

func optionalInt(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
