// Package testutil holds fixtures and fakes shared by package tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// GetTestDataPath returns absolute path to testdata/
func GetTestDataPath() string {
	wd, _ := os.Getwd()
	for {
		testdataPath := filepath.Join(wd, "testdata")
		if _, err := os.Stat(testdataPath); err == nil {
			return testdataPath
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			panic("Could not find testdata directory")
		}
		wd = parent
	}
}

// ReadFixture reads a file from testdata/
func ReadFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(GetTestDataPath(), name))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return data
}

// StopTime describes one stop time update. Zero times are left unset.
type StopTime struct {
	StopID    string
	Arrival   int64
	Departure int64
}

// Trip describes one trip update entity
type Trip struct {
	EntityID string
	TripID   string
	RouteID  string
	Stops    []StopTime
}

// BuildTripUpdateFeed encodes trips as a GTFS-RT FeedMessage. Required proto2
// fields are always populated so the payload decodes cleanly.
func BuildTripUpdateFeed(t testing.TB, trips ...Trip) []byte {
	t.Helper()
	msg := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1717000000),
		},
	}
	for i, tr := range trips {
		id := tr.EntityID
		if id == "" {
			id = "entity-" + string(rune('a'+i))
		}
		tu := &gtfs.TripUpdate{
			Trip: &gtfs.TripDescriptor{
				TripId:  proto.String(tr.TripID),
				RouteId: proto.String(tr.RouteID),
			},
		}
		for _, st := range tr.Stops {
			stu := &gtfs.TripUpdate_StopTimeUpdate{StopId: proto.String(st.StopID)}
			if st.Arrival != 0 {
				stu.Arrival = &gtfs.TripUpdate_StopTimeEvent{Time: proto.Int64(st.Arrival)}
			}
			if st.Departure != 0 {
				stu.Departure = &gtfs.TripUpdate_StopTimeEvent{Time: proto.Int64(st.Departure)}
			}
			tu.StopTimeUpdate = append(tu.StopTimeUpdate, stu)
		}
		msg.Entity = append(msg.Entity, &gtfs.FeedEntity{Id: proto.String(id), TripUpdate: tu})
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to marshal feed: %v", err)
	}
	return data
}

// Upstream is a fake feed server with a swappable response
type Upstream struct {
	*httptest.Server

	mu      sync.Mutex
	status  int
	body    []byte
	headers http.Header
	hits    atomic.Int64
}

// NewUpstream starts a fake feed server answering 200 with body
func NewUpstream(t testing.TB, body []byte) *Upstream {
	t.Helper()
	u := &Upstream{status: http.StatusOK, body: body}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.hits.Add(1)
	u.mu.Lock()
	status, body := u.status, u.body
	u.headers = r.Header.Clone()
	u.mu.Unlock()
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Respond replaces the status and body served from now on
func (u *Upstream) Respond(status int, body []byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
	u.body = body
}

// Hits returns the number of requests served
func (u *Upstream) Hits() int64 { return u.hits.Load() }

// LastHeader returns a header of the most recent request
func (u *Upstream) LastHeader(key string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.headers == nil {
		return ""
	}
	return u.headers.Get(key)
}
