package cmd

import (
	"github.com/spf13/pflag"
	"github.com/vzahanych/brightsky/internal/params"
)

// queryFlags mirrors params.Params on the command line. Pointer fields are
// only filled when the flag was given.
type queryFlags struct {
	lat, lon     float64
	dwdStationID []string
	wmoStationID []string
	sourceID     []string
	warnCellID   int64
	date         string
	lastDate     string
	datetime     string
	maxDist      int
	distance     int
	bbox         string
	format       string
	tz           string
	units        string
	baseURL      string
}

func (f *queryFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.lat, "lat", 0, "latitude in decimal degrees")
	fs.Float64Var(&f.lon, "lon", 0, "longitude in decimal degrees")
	fs.StringSliceVar(&f.dwdStationID, "dwd-station-id", nil, "DWD station ids, comma separated or repeated")
	fs.StringSliceVar(&f.wmoStationID, "wmo-station-id", nil, "WMO station ids, comma separated or repeated")
	fs.StringSliceVar(&f.sourceID, "source-id", nil, "Bright Sky source ids, comma separated or repeated")
	fs.Int64Var(&f.warnCellID, "warn-cell-id", 0, "DWD warn cell id (alerts)")
	fs.StringVar(&f.date, "date", "", "first day, YYYY-MM-DD (weather)")
	fs.StringVar(&f.lastDate, "last-date", "", "last day, YYYY-MM-DD (weather)")
	fs.StringVar(&f.datetime, "datetime", "", "point in time, RFC 3339 (radar)")
	fs.IntVar(&f.maxDist, "max-dist", 0, "station search radius in meters")
	fs.IntVar(&f.distance, "distance", 0, "radar cut-out radius in meters")
	fs.StringVar(&f.bbox, "bbox", "", "south,west,north,east (radar)")
	fs.StringVar(&f.format, "format", "", "radar encoding: plain, compressed or bytes")
	fs.StringVar(&f.tz, "tz", "", "IANA time zone for returned timestamps")
	fs.StringVar(&f.units, "units", "", "unit system: dwd or si")
	fs.StringVar(&f.baseURL, "base-url", "", "API base URL (overrides api.base_url)")
}

func (f *queryFlags) params(fs *pflag.FlagSet) params.Params {
	p := params.Params{
		DWDStationID: f.dwdStationID,
		WMOStationID: f.wmoStationID,
		SourceID:     f.sourceID,
		Date:         f.date,
		LastDate:     f.lastDate,
		DateTime:     f.datetime,
		BBox:         f.bbox,
		Format:       f.format,
		TZ:           f.tz,
		Units:        f.units,
	}
	if fs.Changed("lat") {
		p.Lat = &f.lat
	}
	if fs.Changed("lon") {
		p.Lon = &f.lon
	}
	if fs.Changed("warn-cell-id") {
		p.WarnCellID = &f.warnCellID
	}
	if fs.Changed("max-dist") {
		p.MaxDist = &f.maxDist
	}
	if fs.Changed("distance") {
		p.Distance = &f.distance
	}
	return p
}
