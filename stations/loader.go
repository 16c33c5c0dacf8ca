package stations

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nyctransithub/transit-hub/internal/logging"
)

// Column names of the subway stations CSV
const (
	ColStopID    = "GTFS Stop ID"
	ColStopName  = "Stop Name"
	ColRoutes    = "Daytime Routes"
	ColLatitude  = "GTFS Latitude"
	ColLongitude = "GTFS Longitude"
)

// Load parses a stations CSV into a catalog
func Load(r io.Reader) (*Catalog, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.LazyQuotes = true
	rec, err := csvr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read stations csv: %w", err)
	}
	if len(rec) == 0 {
		return nil, fmt.Errorf("stations csv: empty file")
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	sID := idx(ColStopID)
	sN := idx(ColStopName)
	rts := idx(ColRoutes)
	sLat := idx(ColLatitude)
	sLon := idx(ColLongitude)
	for _, req := range []struct {
		col string
		i   int
	}{{ColStopID, sID}, {ColStopName, sN}, {ColRoutes, rts}} {
		if req.i < 0 {
			return nil, fmt.Errorf("stations csv: missing column %q", req.col)
		}
	}

	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rows := make([]row, 0, len(rec)-1)
	for _, line := range rec[1:] {
		id := field(line, sID)
		if id == "" {
			continue
		}
		r := row{
			stopID: id,
			name:   field(line, sN),
			lines:  strings.Fields(field(line, rts)),
		}
		lat, errLat := strconv.ParseFloat(field(line, sLat), 64)
		lon, errLon := strconv.ParseFloat(field(line, sLon), 64)
		if errLat == nil && errLon == nil {
			r.pos = coord{lat: lat, lon: lon, ok: true}
		}
		rows = append(rows, r)
	}
	return newCatalog(rows), nil
}

// LoadFile loads the catalog from path. Any failure is logged and an empty
// catalog is returned so the service can still start.
func LoadFile(path string, log logging.Logger) *Catalog {
	if log == nil {
		log = logging.Nop()
	}
	f, err := os.Open(path)
	if err != nil {
		log.Error("stations csv unavailable, continuing with empty catalog", "path", path, "error", err)
		return Empty()
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		log.Error("stations csv unreadable, continuing with empty catalog", "path", path, "error", err)
		return Empty()
	}
	log.Info("station catalog loaded", "path", path, "stations", c.Len(), "rows", len(c.rows))
	return c
}
