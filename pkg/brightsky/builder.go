package brightsky

import (
	"time"
)

// Builders record the latest value for every parameter and defer all checks to
// Build. Location setters replace each other: only the last one called is kept.
// A builder belongs to a single goroutine and should be dropped after Build.
//
// Build checks run in this order and stop at the first failure:
// missing location, coordinates, bounding box, missing date, date order,
// distances, enumerations.

// CurrentWeatherQueryBuilder accumulates parameters for /current_weather.
type CurrentWeatherQueryBuilder struct {
	f fields
}

func NewCurrentWeatherQueryBuilder() *CurrentWeatherQueryBuilder {
	return &CurrentWeatherQueryBuilder{}
}

func (b *CurrentWeatherQueryBuilder) WithLatLon(lat, lon float64) *CurrentWeatherQueryBuilder {
	b.f.location = LatLon{Lat: lat, Lon: lon}
	return b
}

func (b *CurrentWeatherQueryBuilder) WithDWDStationIDs(ids ...string) *CurrentWeatherQueryBuilder {
	b.f.location = DWDStationIDs(append([]string(nil), ids...))
	return b
}

func (b *CurrentWeatherQueryBuilder) WithWMOStationIDs(ids ...string) *CurrentWeatherQueryBuilder {
	b.f.location = WMOStationIDs(append([]string(nil), ids...))
	return b
}

func (b *CurrentWeatherQueryBuilder) WithSourceIDs(ids ...int64) *CurrentWeatherQueryBuilder {
	b.f.location = SourceIDs(append([]int64(nil), ids...))
	return b
}

// WithMaxDist limits the station search radius around lat/lon, in meters.
func (b *CurrentWeatherQueryBuilder) WithMaxDist(meters int) *CurrentWeatherQueryBuilder {
	b.f.maxDist = &meters
	return b
}

func (b *CurrentWeatherQueryBuilder) WithTZ(tz string) *CurrentWeatherQueryBuilder {
	b.f.tz = tz
	return b
}

func (b *CurrentWeatherQueryBuilder) WithUnits(units UnitType) *CurrentWeatherQueryBuilder {
	b.f.units = units
	return b
}

func (b *CurrentWeatherQueryBuilder) Build() (*CurrentWeatherQuery, error) {
	if err := b.f.checkLocation(true); err != nil {
		return nil, err
	}
	if err := b.f.checkDistances(); err != nil {
		return nil, err
	}
	if err := b.f.checkEnums(); err != nil {
		return nil, err
	}
	return &CurrentWeatherQuery{queryModel{f: b.f.copy()}}, nil
}

// WeatherQueryBuilder accumulates parameters for /weather. Date is required.
type WeatherQueryBuilder struct {
	f fields
}

func NewWeatherQueryBuilder() *WeatherQueryBuilder {
	return &WeatherQueryBuilder{}
}

func (b *WeatherQueryBuilder) WithDate(date Date) *WeatherQueryBuilder {
	b.f.date = date
	return b
}

// WithLastDate turns the query into a date range ending at lastDate.
func (b *WeatherQueryBuilder) WithLastDate(lastDate Date) *WeatherQueryBuilder {
	b.f.lastDate = lastDate
	return b
}

func (b *WeatherQueryBuilder) WithLatLon(lat, lon float64) *WeatherQueryBuilder {
	b.f.location = LatLon{Lat: lat, Lon: lon}
	return b
}

func (b *WeatherQueryBuilder) WithDWDStationIDs(ids ...string) *WeatherQueryBuilder {
	b.f.location = DWDStationIDs(append([]string(nil), ids...))
	return b
}

func (b *WeatherQueryBuilder) WithWMOStationIDs(ids ...string) *WeatherQueryBuilder {
	b.f.location = WMOStationIDs(append([]string(nil), ids...))
	return b
}

func (b *WeatherQueryBuilder) WithSourceIDs(ids ...int64) *WeatherQueryBuilder {
	b.f.location = SourceIDs(append([]int64(nil), ids...))
	return b
}

func (b *WeatherQueryBuilder) WithMaxDist(meters int) *WeatherQueryBuilder {
	b.f.maxDist = &meters
	return b
}

func (b *WeatherQueryBuilder) WithTZ(tz string) *WeatherQueryBuilder {
	b.f.tz = tz
	return b
}

func (b *WeatherQueryBuilder) WithUnits(units UnitType) *WeatherQueryBuilder {
	b.f.units = units
	return b
}

func (b *WeatherQueryBuilder) Build() (*WeatherQuery, error) {
	if err := b.f.checkLocation(true); err != nil {
		return nil, err
	}
	if b.f.date.IsZero() {
		return nil, invalid(ErrMissingDate, "date", nil)
	}
	if err := ValidateDate("date", b.f.date); err != nil {
		return nil, err
	}
	if err := ValidateDate("last_date", b.f.lastDate); err != nil {
		return nil, err
	}
	if err := ValidateDateOrder(b.f.date, b.f.lastDate); err != nil {
		return nil, err
	}
	if err := b.f.checkDistances(); err != nil {
		return nil, err
	}
	if err := b.f.checkEnums(); err != nil {
		return nil, err
	}
	return &WeatherQuery{queryModel{f: b.f.copy()}}, nil
}

// RadarQueryBuilder accumulates parameters for /radar. Every parameter is optional.
type RadarQueryBuilder struct {
	f fields
}

func NewRadarQueryBuilder() *RadarQueryBuilder {
	return &RadarQueryBuilder{}
}

func (b *RadarQueryBuilder) WithLatLon(lat, lon float64) *RadarQueryBuilder {
	b.f.location = LatLon{Lat: lat, Lon: lon}
	return b
}

func (b *RadarQueryBuilder) WithBBox(south, west, north, east float64) *RadarQueryBuilder {
	b.f.bbox = &BoundingBox{South: south, West: west, North: north, East: east}
	return b
}

// WithDistance sets the radius in meters of the square cut out around lat/lon.
func (b *RadarQueryBuilder) WithDistance(meters int) *RadarQueryBuilder {
	b.f.distance = &meters
	return b
}

// WithDateTime asks for the radar frame at t. The offset of t is kept as given.
func (b *RadarQueryBuilder) WithDateTime(t time.Time) *RadarQueryBuilder {
	b.f.datetime = t
	return b
}

func (b *RadarQueryBuilder) WithFormat(format RadarCompressionFormat) *RadarQueryBuilder {
	b.f.format = format
	return b
}

func (b *RadarQueryBuilder) WithTZ(tz string) *RadarQueryBuilder {
	b.f.tz = tz
	return b
}

func (b *RadarQueryBuilder) Build() (*RadarQuery, error) {
	if err := b.f.checkLocation(false); err != nil {
		return nil, err
	}
	if err := b.f.checkBBox(); err != nil {
		return nil, err
	}
	if err := b.f.checkDistances(); err != nil {
		return nil, err
	}
	if err := b.f.checkEnums(); err != nil {
		return nil, err
	}
	return &RadarQuery{queryModel{f: b.f.copy()}}, nil
}

// AlertsQueryBuilder accumulates parameters for /alerts.
type AlertsQueryBuilder struct {
	f               fields
	requireLocation bool
}

// NewAlertsQueryBuilder returns a builder whose location is optional. Without a
// location the query returns all current alerts.
func NewAlertsQueryBuilder() *AlertsQueryBuilder {
	return &AlertsQueryBuilder{}
}

// NewLocalAlertsQueryBuilder returns a builder that fails with ErrMissingLocation
// unless a coordinate or warn cell is set.
func NewLocalAlertsQueryBuilder() *AlertsQueryBuilder {
	return &AlertsQueryBuilder{requireLocation: true}
}

func (b *AlertsQueryBuilder) WithLatLon(lat, lon float64) *AlertsQueryBuilder {
	b.f.location = LatLon{Lat: lat, Lon: lon}
	return b
}

func (b *AlertsQueryBuilder) WithWarnCellID(id int64) *AlertsQueryBuilder {
	b.f.location = WarnCellID(id)
	return b
}

func (b *AlertsQueryBuilder) WithTZ(tz string) *AlertsQueryBuilder {
	b.f.tz = tz
	return b
}

func (b *AlertsQueryBuilder) Build() (*AlertsQuery, error) {
	if err := b.f.checkLocation(b.requireLocation); err != nil {
		return nil, err
	}
	return &AlertsQuery{queryModel{f: b.f.copy()}}, nil
}
