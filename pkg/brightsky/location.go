package brightsky

import (
	"strconv"
)

// Location selects where a query is made for. It is a closed set: LatLon,
// DWDStationIDs, WMOStationIDs, SourceIDs and WarnCellID. A nil Location means
// none was given.
type Location interface {
	validate() error
	appendQuery(w *queryWriter)
	clone() Location
}

// LatLon locates a query by geographic coordinates in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

func (l LatLon) validate() error {
	if err := ValidateLatitude(l.Lat); err != nil {
		return err
	}
	return ValidateLongitude(l.Lon)
}

func (l LatLon) appendQuery(w *queryWriter) {
	w.add("lat", formatFloat(l.Lat))
	w.add("lon", formatFloat(l.Lon))
}

func (l LatLon) clone() Location { return l }

// DWDStationIDs are DWD station identifiers such as "01766", sent in order.
type DWDStationIDs []string

func (ids DWDStationIDs) validate() error {
	if len(ids) == 0 {
		return invalid(ErrMissingLocation, "dwd_station_id", nil)
	}
	return nil
}

func (ids DWDStationIDs) appendQuery(w *queryWriter) {
	w.addList("dwd_station_id", ids)
}

func (ids DWDStationIDs) clone() Location {
	return DWDStationIDs(append([]string(nil), ids...))
}

// WMOStationIDs are WMO station identifiers such as "10315", sent in order.
type WMOStationIDs []string

func (ids WMOStationIDs) validate() error {
	if len(ids) == 0 {
		return invalid(ErrMissingLocation, "wmo_station_id", nil)
	}
	return nil
}

func (ids WMOStationIDs) appendQuery(w *queryWriter) {
	w.addList("wmo_station_id", ids)
}

func (ids WMOStationIDs) clone() Location {
	return WMOStationIDs(append([]string(nil), ids...))
}

// SourceIDs are Bright Sky source identifiers, sent in order.
type SourceIDs []int64

func (ids SourceIDs) validate() error {
	if len(ids) == 0 {
		return invalid(ErrMissingLocation, "source_id", nil)
	}
	return nil
}

func (ids SourceIDs) appendQuery(w *queryWriter) {
	items := make([]string, len(ids))
	for i, id := range ids {
		items[i] = strconv.FormatInt(id, 10)
	}
	w.addList("source_id", items)
}

func (ids SourceIDs) clone() Location {
	return SourceIDs(append([]int64(nil), ids...))
}

// WarnCellID is a DWD warn cell, used by the alerts endpoint only.
type WarnCellID int64

func (id WarnCellID) validate() error { return nil }

func (id WarnCellID) appendQuery(w *queryWriter) {
	w.add("warn_cell_id", strconv.FormatInt(int64(id), 10))
}

func (id WarnCellID) clone() Location { return id }

func cloneLocation(l Location) Location {
	if l == nil {
		return nil
	}
	return l.clone()
}
