package brightsky

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Bright Sky instance.
const DefaultBaseURL = "https://api.brightsky.dev"

const (
	PathCurrentWeather = "/current_weather"
	PathWeather        = "/weather"
	PathRadar          = "/radar"
	PathAlerts         = "/alerts"
)

// Query is a validated endpoint request ready to be serialized.
type Query interface {
	// Path is the endpoint path, e.g. "/weather".
	Path() string
	// AppendQuery appends the encoded query string (without '?') to dst.
	AppendQuery(dst []byte) []byte
}

// Encode returns the canonical query string of q.
func Encode(q Query) string {
	return string(q.AppendQuery(nil))
}

// URLString joins base, the endpoint path and the query string. It performs no
// validation of base and never fails.
func URLString(base string, q Query) string {
	buf := make([]byte, 0, len(base)+64)
	buf = append(buf, strings.TrimRight(base, "/")...)
	buf = append(buf, q.Path()...)
	mark := len(buf)
	buf = append(buf, '?')
	buf = q.AppendQuery(buf)
	if len(buf) == mark+1 {
		buf = buf[:mark]
	}
	return string(buf)
}

// URL is like URLString but requires base to be an absolute URL with a host and
// without a query or fragment of its own.
func URL(base string, q Query) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, &URLError{Base: base, Err: err}
	}
	if u.Scheme == "" || u.Host == "" || u.RawQuery != "" || u.Fragment != "" || u.Opaque != "" {
		return nil, &URLError{Base: base}
	}

	// Join on the escaped form so a base like /a%2Fb keeps its meaning.
	raw := strings.TrimRight(u.EscapedPath(), "/") + q.Path()
	path, err := url.PathUnescape(raw)
	if err != nil {
		return nil, &URLError{Base: base, Err: err}
	}
	u.Path = path
	u.RawPath = ""
	if raw != path {
		u.RawPath = raw
	}
	u.RawQuery = string(q.AppendQuery(nil))
	return u, nil
}

// queryWriter accumulates key=value pairs into a byte buffer.
type queryWriter struct {
	buf []byte
	n   int
}

func (w *queryWriter) add(key, value string) {
	if w.n > 0 {
		w.buf = append(w.buf, '&')
	}
	w.buf = append(w.buf, key...)
	w.buf = append(w.buf, '=')
	w.buf = append(w.buf, url.QueryEscape(value)...)
	w.n++
}

// addList sends items as one comma-joined value, in the order given.
func (w *queryWriter) addList(key string, items []string) {
	w.add(key, strings.Join(items, ","))
}

// fields is the union of every recognized parameter. appendTo is the single place
// that decides key order, so all endpoints serialize the same way:
//
//	lat, lon, dwd_station_id, wmo_station_id, source_id, warn_cell_id,
//	date, last_date, datetime, max_dist, distance, bbox, format, tz, units
type fields struct {
	location Location
	date     Date
	lastDate Date
	datetime time.Time
	maxDist  *int
	distance *int
	bbox     *BoundingBox
	format   RadarCompressionFormat
	tz       string
	units    UnitType
}

func (f *fields) appendTo(dst []byte) []byte {
	w := &queryWriter{buf: dst}

	if f.location != nil {
		f.location.appendQuery(w)
	}
	if !f.date.IsZero() {
		w.add("date", f.date.String())
	}
	if !f.lastDate.IsZero() {
		w.add("last_date", f.lastDate.String())
	}
	if !f.datetime.IsZero() {
		w.add("datetime", f.datetime.Format(time.RFC3339Nano))
	}
	if f.maxDist != nil {
		w.add("max_dist", strconv.Itoa(*f.maxDist))
	}
	if f.distance != nil {
		w.add("distance", strconv.Itoa(*f.distance))
	}
	if f.bbox != nil {
		w.add("bbox", f.bbox.String())
	}
	if f.format != "" {
		w.add("format", string(f.format))
	}
	if f.tz != "" {
		w.add("tz", f.tz)
	}
	if f.units != "" {
		w.add("units", string(f.units))
	}

	return w.buf
}

// copy returns a deep copy that shares no mutable state with f.
func (f fields) copy() fields {
	out := f
	out.location = cloneLocation(f.location)
	if f.maxDist != nil {
		v := *f.maxDist
		out.maxDist = &v
	}
	if f.distance != nil {
		v := *f.distance
		out.distance = &v
	}
	if f.bbox != nil {
		v := *f.bbox
		out.bbox = &v
	}
	return out
}

// checkLocation reports a missing required location, then validates the one set.
func (f *fields) checkLocation(required bool) error {
	if f.location == nil {
		if required {
			return invalid(ErrMissingLocation, "location", nil)
		}
		return nil
	}
	return f.location.validate()
}

func (f *fields) checkBBox() error {
	if f.bbox == nil {
		return nil
	}
	return f.bbox.Validate()
}

func (f *fields) checkDistances() error {
	if f.maxDist != nil {
		if err := validateDistance("max_dist", *f.maxDist, ErrInvalidMaxDistance); err != nil {
			return err
		}
	}
	if f.distance != nil {
		if err := validateDistance("distance", *f.distance, ErrInvalidDistance); err != nil {
			return err
		}
	}
	return nil
}

func (f *fields) checkEnums() error {
	if f.units != "" && !f.units.Valid() {
		return invalid(ErrInvalidUnits, "units", string(f.units))
	}
	if f.format != "" && !f.format.Valid() {
		return invalid(ErrInvalidFormat, "format", string(f.format))
	}
	return nil
}

func (f *fields) effectiveUnits() UnitType {
	if f.units == "" {
		return DefaultUnits
	}
	return f.units
}
