package params

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vzahanych/brightsky/pkg/brightsky"
)

// ErrInvalidParameter covers malformed input that never reaches a builder:
// unparsable dates, a bbox without four numbers, or a parameter the endpoint
// does not take.
var ErrInvalidParameter = errors.New("invalid parameter")

type Endpoint string

const (
	CurrentWeather Endpoint = "current_weather"
	Weather        Endpoint = "weather"
	Radar          Endpoint = "radar"
	Alerts         Endpoint = "alerts"
)

var Endpoints = []Endpoint{CurrentWeather, Weather, Radar, Alerts}

// ParseEndpoint accepts the endpoint name with or without a leading slash and
// with dashes in place of underscores.
func ParseEndpoint(s string) (Endpoint, error) {
	name := strings.ReplaceAll(strings.TrimPrefix(s, "/"), "-", "_")
	for _, e := range Endpoints {
		if string(e) == name {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown endpoint %q", s)
}

// Params is the flat, untyped form of a query as it arrives from a URL or the
// command line. Lists may be given repeated or comma-separated.
type Params struct {
	Lat          *float64 `form:"lat" json:"lat,omitempty"`
	Lon          *float64 `form:"lon" json:"lon,omitempty"`
	DWDStationID []string `form:"dwd_station_id" json:"dwd_station_id,omitempty" validate:"omitempty,dive,required"`
	WMOStationID []string `form:"wmo_station_id" json:"wmo_station_id,omitempty" validate:"omitempty,dive,required"`
	SourceID     []string `form:"source_id" json:"source_id,omitempty" validate:"omitempty,dive,number"`
	WarnCellID   *int64   `form:"warn_cell_id" json:"warn_cell_id,omitempty"`
	Date         string   `form:"date" json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LastDate     string   `form:"last_date" json:"last_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTime     string   `form:"datetime" json:"datetime,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MaxDist      *int     `form:"max_dist" json:"max_dist,omitempty"`
	Distance     *int     `form:"distance" json:"distance,omitempty"`
	BBox         string   `form:"bbox" json:"bbox,omitempty"`
	Format       string   `form:"format" json:"format,omitempty"`
	TZ           string   `form:"tz" json:"tz,omitempty"`
	Units        string   `form:"units" json:"units,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// accepted lists the keys each endpoint takes.
var accepted = map[Endpoint][]string{
	CurrentWeather: {"lat", "lon", "dwd_station_id", "wmo_station_id", "source_id", "max_dist", "tz", "units"},
	Weather:        {"lat", "lon", "dwd_station_id", "wmo_station_id", "source_id", "date", "last_date", "max_dist", "tz", "units"},
	Radar:          {"lat", "lon", "bbox", "datetime", "distance", "format", "tz"},
	Alerts:         {"lat", "lon", "warn_cell_id", "tz"},
}

// Build normalizes p, checks it and hands it to the builder of endpoint.
// Builder failures come back unchanged as *brightsky.ValidationError.
func (p Params) Build(endpoint Endpoint) (brightsky.Query, error) {
	n := p.normalized()

	if err := n.checkAccepted(endpoint); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	switch endpoint {
	case CurrentWeather:
		return n.currentWeather()
	case Weather:
		return n.weather()
	case Radar:
		return n.radar()
	case Alerts:
		return n.alerts()
	default:
		return nil, fmt.Errorf("unknown endpoint %q", endpoint)
	}
}

// Validate runs the struct tag checks and reports the first failure.
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &brightsky.ValidationError{
			Kind:  ErrInvalidParameter,
			Field: strings.SplitN(fe.Field(), "[", 2)[0],
			Value: fe.Value(),
		}
	}
	return err
}

// Set returns the keys that carry a value, in declaration order.
func (p Params) Set() []string {
	var keys []string
	v := reflect.ValueOf(p)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !v.Field(i).IsZero() {
			keys = append(keys, strings.SplitN(t.Field(i).Tag.Get("form"), ",", 2)[0])
		}
	}
	return keys
}

func (p Params) normalized() Params {
	p.DWDStationID = splitList(p.DWDStationID)
	p.WMOStationID = splitList(p.WMOStationID)
	p.SourceID = splitList(p.SourceID)
	p.BBox = strings.TrimSpace(p.BBox)
	p.TZ = strings.TrimSpace(p.TZ)
	return p
}

func (p Params) checkAccepted(endpoint Endpoint) error {
	keys, ok := accepted[endpoint]
	if !ok {
		return fmt.Errorf("unknown endpoint %q", endpoint)
	}
	for _, key := range p.Set() {
		if !contains(keys, key) {
			return &brightsky.ValidationError{
				Kind:  ErrInvalidParameter,
				Field: key,
				Value: fmt.Sprintf("not supported by %s", endpoint),
			}
		}
	}
	if (p.Lat == nil) != (p.Lon == nil) {
		field := "lon"
		if p.Lat == nil {
			field = "lat"
		}
		return &brightsky.ValidationError{Kind: brightsky.ErrMissingLocation, Field: field}
	}
	return nil
}

func (p Params) currentWeather() (brightsky.Query, error) {
	b := brightsky.NewCurrentWeatherQueryBuilder()
	if err := applyStations[*brightsky.CurrentWeatherQueryBuilder](p, b); err != nil {
		return nil, err
	}
	if p.MaxDist != nil {
		b.WithMaxDist(*p.MaxDist)
	}
	if p.TZ != "" {
		b.WithTZ(p.TZ)
	}
	if p.Units != "" {
		b.WithUnits(brightsky.UnitType(p.Units))
	}
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (p Params) weather() (brightsky.Query, error) {
	b := brightsky.NewWeatherQueryBuilder()
	if err := applyStations[*brightsky.WeatherQueryBuilder](p, b); err != nil {
		return nil, err
	}
	if p.Date != "" {
		d, err := parseDate("date", p.Date)
		if err != nil {
			return nil, err
		}
		b.WithDate(d)
	}
	if p.LastDate != "" {
		d, err := parseDate("last_date", p.LastDate)
		if err != nil {
			return nil, err
		}
		b.WithLastDate(d)
	}
	if p.MaxDist != nil {
		b.WithMaxDist(*p.MaxDist)
	}
	if p.TZ != "" {
		b.WithTZ(p.TZ)
	}
	if p.Units != "" {
		b.WithUnits(brightsky.UnitType(p.Units))
	}
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (p Params) radar() (brightsky.Query, error) {
	b := brightsky.NewRadarQueryBuilder()
	if p.Lat != nil {
		b.WithLatLon(*p.Lat, *p.Lon)
	}
	if p.BBox != "" {
		box, err := parseBBox(p.BBox)
		if err != nil {
			return nil, err
		}
		b.WithBBox(box.South, box.West, box.North, box.East)
	}
	if p.DateTime != "" {
		t, err := time.Parse(time.RFC3339, p.DateTime)
		if err != nil {
			return nil, &brightsky.ValidationError{Kind: ErrInvalidParameter, Field: "datetime", Value: p.DateTime}
		}
		b.WithDateTime(t)
	}
	if p.Distance != nil {
		b.WithDistance(*p.Distance)
	}
	if p.Format != "" {
		b.WithFormat(brightsky.RadarCompressionFormat(p.Format))
	}
	if p.TZ != "" {
		b.WithTZ(p.TZ)
	}
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (p Params) alerts() (brightsky.Query, error) {
	b := brightsky.NewAlertsQueryBuilder()
	if p.Lat != nil {
		b.WithLatLon(*p.Lat, *p.Lon)
	}
	if p.WarnCellID != nil {
		b.WithWarnCellID(*p.WarnCellID)
	}
	if p.TZ != "" {
		b.WithTZ(p.TZ)
	}
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return q, nil
}

// stationSetter is implemented by the current weather and weather builders.
type stationSetter[B any] interface {
	WithLatLon(lat, lon float64) B
	WithDWDStationIDs(ids ...string) B
	WithWMOStationIDs(ids ...string) B
	WithSourceIDs(ids ...int64) B
}

// applyStations sets every location given, in key order. The builder keeps the
// last one.
func applyStations[B any](p Params, b stationSetter[B]) error {
	if p.Lat != nil {
		b.WithLatLon(*p.Lat, *p.Lon)
	}
	if len(p.DWDStationID) > 0 {
		b.WithDWDStationIDs(p.DWDStationID...)
	}
	if len(p.WMOStationID) > 0 {
		b.WithWMOStationIDs(p.WMOStationID...)
	}
	if len(p.SourceID) > 0 {
		ids := make([]int64, len(p.SourceID))
		for i, s := range p.SourceID {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return &brightsky.ValidationError{Kind: ErrInvalidParameter, Field: "source_id", Value: s}
			}
			ids[i] = id
		}
		b.WithSourceIDs(ids...)
	}
	return nil
}

func parseDate(field, s string) (brightsky.Date, error) {
	d, err := brightsky.ParseDate(s)
	if err != nil {
		return brightsky.Date{}, &brightsky.ValidationError{Kind: ErrInvalidParameter, Field: field, Value: s}
	}
	return d, nil
}

func parseBBox(s string) (brightsky.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return brightsky.BoundingBox{}, &brightsky.ValidationError{Kind: ErrInvalidParameter, Field: "bbox", Value: s}
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return brightsky.BoundingBox{}, &brightsky.ValidationError{Kind: ErrInvalidParameter, Field: "bbox", Value: s}
		}
		v[i] = f
	}
	return brightsky.BoundingBox{South: v[0], West: v[1], North: v[2], East: v[3]}, nil
}

func splitList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
