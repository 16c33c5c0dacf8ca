package gtfsrt

// StopTimeRecord is one decoded stop time update before catalog enrichment
type StopTimeRecord struct {
	TripID    string
	RouteID   string
	StopID    string
	Arrival   *int64
	Departure *int64
}

// TrainUpdate is one predicted stop event for a trip, resolved against the
// station catalog
type TrainUpdate struct {
	TripID    string   `json:"trip_id"`
	Station   string   `json:"station"`
	Arrival   *int64   `json:"arrival"`
	Departure *int64   `json:"departure"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
}
