/*
Package stations provides the static station reference catalog.

The catalog is loaded once at startup from the subway stations CSV and is
immutable afterwards, so it can be shared by every request goroutine without
locking. It answers three questions:

  - Lookup: what is the display name and position of a feed stop id?
  - ExpandStations: which (station, line) pairs exist?
  - StationsForLine: which stations does one line serve?

A stop id missing from the catalog is not an error. Lookup degrades to the raw
id with no coordinates, and callers keep going.

# Source format

The CSV must have a header row containing (case-insensitively):

	GTFS Stop ID, Stop Name, Daytime Routes, GTFS Latitude, GTFS Longitude

Daytime Routes is a space-delimited list of line tokens ("A C E").
*/
package stations
