package stations

import (
	"strings"
)

// StationRef is one catalogued station with every line that serves it
type StationRef struct {
	StopID string   `json:"stop_id"`
	Name   string   `json:"name"`
	Lines  []string `json:"lines"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
}

// StationLine is one (station, line) pair produced by ExpandStations
type StationLine struct {
	StopID      string   `json:"stop_id"`
	StationName string   `json:"station_name"`
	Line        string   `json:"line"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

// Resolved is the result of a Lookup. On a miss Name is the raw stop id and
// both coordinates are nil.
type Resolved struct {
	Name  string
	Lat   *float64
	Lon   *float64
	Found bool
}

type coord struct {
	lat, lon float64
	ok       bool
}

func (c coord) pointers() (*float64, *float64) {
	if !c.ok {
		return nil, nil
	}
	lat, lon := c.lat, c.lon
	return &lat, &lon
}

// row is a single source record, kept in file order for ExpandStations
type row struct {
	stopID string
	name   string
	lines  []string
	pos    coord
}

type station struct {
	stopID string
	name   string
	lines  []string
	pos    coord
}

// Catalog stores the station table in memory for fast lookups
type Catalog struct {
	rows     []row
	order    []string            // stop ids in first-seen order
	stations map[string]*station // stop_id -> station
}

// Empty returns a catalog with no stations; every lookup is a miss
func Empty() *Catalog {
	return &Catalog{stations: map[string]*station{}}
}

func newCatalog(rows []row) *Catalog {
	c := &Catalog{
		rows:     rows,
		order:    make([]string, 0, len(rows)),
		stations: make(map[string]*station, len(rows)),
	}
	for _, r := range rows {
		st, ok := c.stations[r.stopID]
		if !ok {
			st = &station{stopID: r.stopID, name: r.name, pos: r.pos}
			c.stations[r.stopID] = st
			c.order = append(c.order, r.stopID)
		}
		if !st.pos.ok && r.pos.ok {
			st.pos = r.pos
		}
		for _, l := range r.lines {
			if !containsString(st.lines, l) {
				st.lines = append(st.lines, l)
			}
		}
	}
	return c
}

// Len returns the number of distinct stations
func (c *Catalog) Len() int { return len(c.order) }

// Lookup resolves a feed stop id to its display name and coordinates.
// Matching is exact; a miss returns the raw id with no coordinates.
func (c *Catalog) Lookup(stopID string) Resolved {
	if st, ok := c.stations[stopID]; ok {
		lat, lon := st.pos.pointers()
		return Resolved{Name: st.name, Lat: lat, Lon: lon, Found: true}
	}
	return Resolved{Name: stopID}
}

// Stations returns every distinct station in first-seen order
func (c *Catalog) Stations() []StationRef {
	out := make([]StationRef, 0, len(c.order))
	for _, id := range c.order {
		st := c.stations[id]
		lat, lon := st.pos.pointers()
		out = append(out, StationRef{
			StopID: st.stopID,
			Name:   st.name,
			Lines:  append([]string{}, st.lines...),
			Lat:    lat,
			Lon:    lon,
		})
	}
	return out
}

// ExpandStations emits one record per line token of every source row, in row
// order then token order. A row listing k lines yields k records.
func (c *Catalog) ExpandStations() []StationLine {
	out := make([]StationLine, 0, len(c.rows))
	for _, r := range c.rows {
		for _, l := range r.lines {
			lat, lon := r.pos.pointers()
			out = append(out, StationLine{
				StopID:      r.stopID,
				StationName: r.name,
				Line:        l,
				Lat:         lat,
				Lon:         lon,
			})
		}
	}
	return out
}

// StationsForLine returns the expanded records served by line (case-insensitive)
func (c *Catalog) StationsForLine(line string) []StationLine {
	line = strings.TrimSpace(line)
	out := []StationLine{}
	for _, sl := range c.ExpandStations() {
		if strings.EqualFold(sl.Line, line) {
			out = append(out, sl)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
