package gtfsrt

import (
	"fmt"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Decode parses a FeedMessage and flattens its trip updates into stop time
// records. Entities without a trip update are skipped. Order follows the
// feed and nothing is deduplicated.
func Decode(payload []byte) ([]StopTimeRecord, error) {
	var fm gtfs.FeedMessage
	if err := proto.Unmarshal(payload, &fm); err != nil {
		return nil, fmt.Errorf("unmarshal feed message: %w", err)
	}

	records := []StopTimeRecord{}
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		var tripID, routeID string
		if tu.Trip != nil {
			if tu.Trip.TripId != nil {
				tripID = *tu.Trip.TripId
			}
			if tu.Trip.RouteId != nil {
				routeID = *tu.Trip.RouteId
			}
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			rec := StopTimeRecord{
				TripID:  tripID,
				RouteID: routeID,
				StopID:  stu.GetStopId(),
			}
			if stu.Arrival != nil && stu.Arrival.Time != nil {
				t := *stu.Arrival.Time
				rec.Arrival = &t
			}
			if stu.Departure != nil && stu.Departure.Time != nil {
				t := *stu.Departure.Time
				rec.Departure = &t
			}
			records = append(records, rec)
		}
	}
	return records, nil
}
