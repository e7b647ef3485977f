package brightsky

import (
	"time"
)

// Response types mirror the JSON returned by the API. Pointer fields are the
// ones the API may send as null or leave out.

type WeatherCondition string

const (
	ConditionDry          WeatherCondition = "dry"
	ConditionFog          WeatherCondition = "fog"
	ConditionRain         WeatherCondition = "rain"
	ConditionSleet        WeatherCondition = "sleet"
	ConditionSnow         WeatherCondition = "snow"
	ConditionHail         WeatherCondition = "hail"
	ConditionThunderstorm WeatherCondition = "thunderstorm"
)

type WeatherIcon string

const (
	IconClearDay          WeatherIcon = "clear-day"
	IconClearNight        WeatherIcon = "clear-night"
	IconPartlyCloudyDay   WeatherIcon = "partly-cloudy-day"
	IconPartlyCloudyNight WeatherIcon = "partly-cloudy-night"
	IconCloudy            WeatherIcon = "cloudy"
	IconFog               WeatherIcon = "fog"
	IconWind              WeatherIcon = "wind"
	IconRain              WeatherIcon = "rain"
	IconSleet             WeatherIcon = "sleet"
	IconSnow              WeatherIcon = "snow"
	IconHail              WeatherIcon = "hail"
	IconThunderstorm      WeatherIcon = "thunderstorm"
)

type ObservationType string

const (
	ObservationHistorical ObservationType = "historical"
	ObservationCurrent    ObservationType = "current"
	ObservationSynop      ObservationType = "synop"
	ObservationForecast   ObservationType = "forecast"
)

// Source describes the station or model a record was taken from.
type Source struct {
	ID              int64           `json:"id"`
	DWDStationID    *string         `json:"dwd_station_id"`
	WMOStationID    *string         `json:"wmo_station_id"`
	StationName     *string         `json:"station_name"`
	ObservationType ObservationType `json:"observation_type"`
	FirstRecord     time.Time       `json:"first_record"`
	LastRecord      time.Time       `json:"last_record"`
	Lat             float64         `json:"lat"`
	Lon             float64         `json:"lon"`
	Height          float64         `json:"height"`
	Distance        *float64        `json:"distance"`
}

type CurrentWeatherResponse struct {
	Weather CurrentWeather `json:"weather"`
	Sources []Source       `json:"sources"`
}

// CurrentWeather is compiled from SYNOP observations of the last 1.5 hours.
// Suffixes _10, _30 and _60 are the aggregation window in minutes.
type CurrentWeather struct {
	Timestamp           time.Time         `json:"timestamp"`
	SourceID            int64             `json:"source_id"`
	CloudCover          *float64          `json:"cloud_cover"`
	Condition           *WeatherCondition `json:"condition"`
	DewPoint            *float64          `json:"dew_point"`
	Icon                *WeatherIcon      `json:"icon"`
	PressureMSL         *float64          `json:"pressure_msl"`
	RelativeHumidity    *int64            `json:"relative_humidity"`
	Temperature         *float64          `json:"temperature"`
	Visibility          *int64            `json:"visibility"`
	FallbackSourceIDs   map[string]int64  `json:"fallback_source_ids"`
	Precipitation10     *float64          `json:"precipitation_10"`
	Precipitation30     *float64          `json:"precipitation_30"`
	Precipitation60     *float64          `json:"precipitation_60"`
	Solar10             *float64          `json:"solar_10"`
	Solar30             *float64          `json:"solar_30"`
	Solar60             *float64          `json:"solar_60"`
	Sunshine30          *float64          `json:"sunshine_30"`
	Sunshine60          *float64          `json:"sunshine_60"`
	WindDirection10     *int64            `json:"wind_direction_10"`
	WindDirection30     *int64            `json:"wind_direction_30"`
	WindDirection60     *int64            `json:"wind_direction_60"`
	WindSpeed10         *float64          `json:"wind_speed_10"`
	WindSpeed30         *float64          `json:"wind_speed_30"`
	WindSpeed60         *float64          `json:"wind_speed_60"`
	WindGustDirection10 *int64            `json:"wind_gust_direction_10"`
	WindGustDirection30 *int64            `json:"wind_gust_direction_30"`
	WindGustDirection60 *int64            `json:"wind_gust_direction_60"`
	WindGustSpeed10     *float64          `json:"wind_gust_speed_10"`
	WindGustSpeed30     *float64          `json:"wind_gust_speed_30"`
	WindGustSpeed60     *float64          `json:"wind_gust_speed_60"`
}

type WeatherResponse struct {
	Weather []Weather `json:"weather"`
	Sources []Source  `json:"sources"`
}

// Weather is one hourly record, historical or forecast.
type Weather struct {
	Timestamp                  time.Time         `json:"timestamp"`
	SourceID                   int64             `json:"source_id"`
	CloudCover                 *float64          `json:"cloud_cover"`
	Condition                  *WeatherCondition `json:"condition"`
	DewPoint                   *float64          `json:"dew_point"`
	Icon                       *WeatherIcon      `json:"icon"`
	PressureMSL                *float64          `json:"pressure_msl"`
	RelativeHumidity           *int64            `json:"relative_humidity"`
	Temperature                *float64          `json:"temperature"`
	Visibility                 *int64            `json:"visibility"`
	FallbackSourceIDs          map[string]int64  `json:"fallback_source_ids"`
	Precipitation              *float64          `json:"precipitation"`
	Solar                      *float64          `json:"solar"`
	Sunshine                   *float64          `json:"sunshine"`
	WindDirection              *int64            `json:"wind_direction"`
	WindSpeed                  *float64          `json:"wind_speed"`
	WindGustDirection          *int64            `json:"wind_gust_direction"`
	WindGustSpeed              *float64          `json:"wind_gust_speed"`
	PrecipitationProbability   *int64            `json:"precipitation_probability"`
	PrecipitationProbability6h *int64            `json:"precipitation_probability_6h"`
}

type RadarResponse struct {
	Radar          []RadarFrame    `json:"radar"`
	Geometry       *Geometry       `json:"geometry"`
	BBox           []int           `json:"bbox"`
	LatLonPosition *LatLonPosition `json:"latlon_position"`
}

// Dimensions returns the grid size implied by the pixel bbox
// [top, left, bottom, right], both ends inclusive.
func (r *RadarResponse) Dimensions() (width, height int, ok bool) {
	if len(r.BBox) != 4 {
		return 0, 0, false
	}
	width = r.BBox[3] - r.BBox[1] + 1
	height = r.BBox[2] - r.BBox[0] + 1
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

// RadarFrame is one 5 minute precipitation frame.
type RadarFrame struct {
	Timestamp      time.Time     `json:"timestamp"`
	Source         string        `json:"source"`
	Precipitation5 Precipitation `json:"precipitation_5"`
}

type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// LatLonPosition is the pixel position of the requested lat/lon in the grid.
type LatLonPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type AlertStatus string

const (
	AlertStatusActual AlertStatus = "actual"
	AlertStatusTest   AlertStatus = "test"
)

type AlertCategory string

const (
	AlertCategoryMet    AlertCategory = "met"
	AlertCategoryHealth AlertCategory = "health"
)

type AlertResponseType string

const (
	AlertResponsePrepare  AlertResponseType = "prepare"
	AlertResponseAllClear AlertResponseType = "allclear"
	AlertResponseNone     AlertResponseType = "none"
	AlertResponseMonitor  AlertResponseType = "monitor"
)

type AlertUrgency string

const (
	AlertUrgencyImmediate AlertUrgency = "immediate"
	AlertUrgencyFuture    AlertUrgency = "future"
)

type AlertSeverity string

const (
	AlertSeverityMinor    AlertSeverity = "minor"
	AlertSeverityModerate AlertSeverity = "moderate"
	AlertSeveritySevere   AlertSeverity = "severe"
	AlertSeverityExtreme  AlertSeverity = "extreme"
)

type AlertCertainty string

const (
	AlertCertaintyObserved AlertCertainty = "observed"
	AlertCertaintyLikely   AlertCertainty = "likely"
)

// Alert is a CAP warning issued by DWD, with English and German texts.
type Alert struct {
	ID            int64              `json:"id"`
	AlertID       string             `json:"alert_id"`
	Status        AlertStatus        `json:"status"`
	Effective     time.Time          `json:"effective"`
	Onset         time.Time          `json:"onset"`
	Expires       *time.Time         `json:"expires"`
	Category      *AlertCategory     `json:"category"`
	ResponseType  *AlertResponseType `json:"response_type"`
	Urgency       *AlertUrgency      `json:"urgency"`
	Severity      *AlertSeverity     `json:"severity"`
	Certainty     *AlertCertainty    `json:"certainty"`
	EventCode     *int64             `json:"event_code"`
	EventEN       *string            `json:"event_en"`
	EventDE       *string            `json:"event_de"`
	HeadlineEN    string             `json:"headline_en"`
	HeadlineDE    string             `json:"headline_de"`
	DescriptionEN string             `json:"description_en"`
	DescriptionDE string             `json:"description_de"`
	InstructionEN *string            `json:"instruction_en"`
	InstructionDE *string            `json:"instruction_de"`
}

// AlertLocation is the warn cell a location-based alerts query resolved to.
type AlertLocation struct {
	WarnCellID int64  `json:"warn_cell_id"`
	Name       string `json:"name"`
	NameShort  string `json:"name_short"`
	District   string `json:"district"`
	State      string `json:"state"`
	StateShort string `json:"state_short"`
}

type AlertsResponse struct {
	Alerts   []Alert        `json:"alerts"`
	Location *AlertLocation `json:"location"`
}
