package gtfsrt

import (
	"testing"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/nyctransithub/transit-hub/internal/testutil"
)

func TestDecode_PreservesFeedOrder(t *testing.T) {
	payload := testutil.BuildTripUpdateFeed(t,
		testutil.Trip{TripID: "trip-1", RouteID: "A", Stops: []testutil.StopTime{
			{StopID: "A32N", Arrival: 1717000100, Departure: 1717000130},
			{StopID: "A31N", Arrival: 1717000200},
		}},
		testutil.Trip{TripID: "trip-2", RouteID: "C", Stops: []testutil.StopTime{
			{StopID: "A32S", Departure: 1717000300},
		}},
	)

	records, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	wantStops := []string{"A32N", "A31N", "A32S"}
	for i, rec := range records {
		if rec.StopID != wantStops[i] {
			t.Errorf("record %d: stop %q, want %q", i, rec.StopID, wantStops[i])
		}
	}
	if records[0].TripID != "trip-1" || records[2].TripID != "trip-2" || records[2].RouteID != "C" {
		t.Errorf("Unexpected trip attribution: %+v", records)
	}
	t.Logf("✓ Decoded %d stop time records in feed order", len(records))
}

func TestDecode_IndependentOptionalTimes(t *testing.T) {
	payload := testutil.BuildTripUpdateFeed(t,
		testutil.Trip{TripID: "trip-1", Stops: []testutil.StopTime{
			{StopID: "S1", Arrival: 100, Departure: 110},
			{StopID: "S2", Arrival: 200},
			{StopID: "S3", Departure: 300},
			{StopID: "S4"},
		}},
	)
	records, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	tests := []struct {
		stop          string
		wantArrival   int64
		wantDeparture int64
	}{
		{stop: "S1", wantArrival: 100, wantDeparture: 110},
		{stop: "S2", wantArrival: 200},
		{stop: "S3", wantDeparture: 300},
		{stop: "S4"},
	}
	for i, tt := range tests {
		t.Run(tt.stop, func(t *testing.T) {
			rec := records[i]
			checkTime(t, "arrival", rec.Arrival, tt.wantArrival)
			checkTime(t, "departure", rec.Departure, tt.wantDeparture)
		})
	}
}

func checkTime(t *testing.T, field string, got *int64, want int64) {
	t.Helper()
	if want == 0 {
		if got != nil {
			t.Errorf("%s = %d, want absent", field, *got)
		}
		return
	}
	if got == nil || *got != want {
		t.Errorf("%s = %v, want %d", field, got, want)
	}
}

func TestDecode_NoDeduplication(t *testing.T) {
	payload := testutil.BuildTripUpdateFeed(t,
		testutil.Trip{TripID: "trip-1", Stops: []testutil.StopTime{{StopID: "S1", Arrival: 1}}},
		testutil.Trip{TripID: "trip-1", Stops: []testutil.StopTime{{StopID: "S1", Arrival: 1}}},
	)
	records, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected duplicate records to be kept, got %d", len(records))
	}
}

func TestDecode_EmptyAndMalformed(t *testing.T) {
	records, err := Decode(testutil.BuildTripUpdateFeed(t))
	if err != nil {
		t.Fatalf("Decode of empty feed failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", records)
	}

	if _, err := Decode([]byte("this is not a protobuf")); err == nil {
		t.Error("Expected error for malformed payload")
	}
}

func TestDecode_EventWithoutTimeIsNull(t *testing.T) {
	msg := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfs.FeedEntity{{
			Id: proto.String("e1"),
			TripUpdate: &gtfs.TripUpdate{
				Trip: &gtfs.TripDescriptor{TripId: proto.String("trip-1")},
				StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{{
					StopId:    proto.String("S1"),
					Arrival:   &gtfs.TripUpdate_StopTimeEvent{Delay: proto.Int32(30)},
					Departure: &gtfs.TripUpdate_StopTimeEvent{Time: proto.Int64(500)},
				}},
			},
		}},
	}
	payload, err := proto.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	records, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	checkTime(t, "arrival", records[0].Arrival, 0)
	checkTime(t, "departure", records[0].Departure, 500)
}
