package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nyctransithub/transit-hub/accessibility"
	"github.com/nyctransithub/transit-hub/alerts"
	"github.com/nyctransithub/transit-hub/favorites"
	"github.com/nyctransithub/transit-hub/feed"
	"github.com/nyctransithub/transit-hub/gtfsrt"
	"github.com/nyctransithub/transit-hub/internal/logging"
	"github.com/nyctransithub/transit-hub/internal/testutil"
	"github.com/nyctransithub/transit-hub/router"
	"github.com/nyctransithub/transit-hub/stations"
)

type testEnv struct {
	server  *Server
	trains  *testutil.Upstream
	alerts  *testutil.Upstream
	outages *testutil.Upstream
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logging.Nop()
	catalog := stations.LoadFile(filepath.Join(testutil.GetTestDataPath(), "stations.csv"), log)

	trainsUp := testutil.NewUpstream(t, testutil.BuildTripUpdateFeed(t,
		testutil.Trip{TripID: "trip-1", RouteID: "A", Stops: []testutil.StopTime{
			{StopID: "A32", Arrival: 1717000100, Departure: 1717000130},
		}},
	))
	alertsUp := testutil.NewUpstream(t, testutil.ReadFixture(t, "alerts_subway.json"))
	outagesUp := testutil.NewUpstream(t, testutil.ReadFixture(t, "outages.json"))

	r := router.New(
		map[string]string{"ACE": trainsUp.URL},
		map[string]string{"subway_alerts": alertsUp.URL},
		outagesUp.URL,
	)
	client := feed.NewClient(time.Second)

	store, err := favorites.OpenSQLite(filepath.Join(t.TempDir(), "favorites.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	srv := New(0, Deps{
		Catalog:   catalog,
		Trains:    gtfsrt.NewService(r, client, catalog, log),
		Alerts:    alerts.NewNormalizer(r, client, log),
		Outages:   accessibility.NewService(r.OutagesURL(), client, log),
		Favorites: store,
		Log:       log,
	})
	return &testEnv{server: srv, trains: trainsUp, alerts: alertsUp, outages: outagesUp}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.server.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Invalid JSON response %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}
	got := decode[healthResponse](t, w)
	if got.Status != "ok" || got.Stations != 5 {
		t.Errorf("Unexpected health %+v", got)
	}
}

func TestStations(t *testing.T) {
	env := newTestEnv(t)

	all := decode[[]stations.StationLine](t, env.do(t, http.MethodGet, "/api/stations", ""))
	if len(all) != 12 {
		t.Errorf("Expected 12 station/line records, got %d", len(all))
	}

	byLine := decode[[]stations.StationLine](t, env.do(t, http.MethodGet, "/api/stations/L", ""))
	if len(byLine) != 1 || byLine[0].StationName != "Bedford Av" {
		t.Errorf("Unexpected L stations %+v", byLine)
	}

	w := env.do(t, http.MethodGet, "/api/stations/Q", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected [], got %s", w.Body.String())
	}
}

func TestRealtimeTrains(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/realtime_trains/ace", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}
	trains := decode[[]gtfsrt.TrainUpdate](t, w)
	if len(trains) != 1 || trains[0].Station != "W 4 St-Wash Sq" || trains[0].Lat == nil {
		t.Errorf("Unexpected trains %+v", trains)
	}
	t.Logf("✓ %d train updates", len(trains))
}

func TestRealtimeTrains_UpstreamFailureIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.trains.Respond(http.StatusInternalServerError, []byte("oops"))

	w := env.do(t, http.MethodGet, "/api/realtime_trains/ACE", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("Expected 200 [], got %d %s", w.Code, w.Body.String())
	}

	// the server keeps serving after a failed upstream call
	w = env.do(t, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("Health after failure: %d", w.Code)
	}
	env.trains.Respond(http.StatusOK, testutil.BuildTripUpdateFeed(t,
		testutil.Trip{TripID: "trip-2", Stops: []testutil.StopTime{{StopID: "L08N"}}},
	))
	trains := decode[[]gtfsrt.TrainUpdate](t, env.do(t, http.MethodGet, "/api/realtime_trains/ACE", ""))
	if len(trains) != 1 || trains[0].TripID != "trip-2" {
		t.Errorf("Expected recovery after upstream failure, got %+v", trains)
	}
}

func TestRealtimeTrains_UnknownGroup(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/realtime_trains/XYZ", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected 200 [], got %d %s", w.Code, w.Body.String())
	}
	if env.trains.Hits() != 0 {
		t.Error("Unknown line group must not reach the network")
	}
}

func TestAlerts(t *testing.T) {
	env := newTestEnv(t)

	list := decode[[]alerts.ServiceAlert](t, env.do(t, http.MethodGet, "/api/alerts/subway_alerts", ""))
	if len(list) != 3 || list[0].StartTime != nil {
		t.Errorf("Unexpected alerts %+v", list)
	}

	w := env.do(t, http.MethodGet, "/api/alerts/ferry_alerts", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected 200 [], got %d %s", w.Code, w.Body.String())
	}
}

func TestAccessibility(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/accessibility", "/get_accessibility"} {
		t.Run(path, func(t *testing.T) {
			got := decode[map[string][]accessibility.Outage](t, env.do(t, http.MethodGet, path, ""))
			if len(got["accessibility"]) != 3 {
				t.Errorf("Expected 3 outages, got %+v", got)
			}
		})
	}

	env.outages.Respond(http.StatusInternalServerError, nil)
	w := env.do(t, http.MethodGet, "/get_accessibility", "")
	if strings.TrimSpace(w.Body.String()) != `{"accessibility":[]}` {
		t.Errorf("Expected empty accessibility list, got %s", w.Body.String())
	}
}

func TestFavorites(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/favorites", `{"station":"Bedford Av","route":"L"}`)
	if w.Code != http.StatusOK || decode[map[string]any](t, w)["message"] != "Favorite added" {
		t.Fatalf("Add: %d %s", w.Code, w.Body.String())
	}

	list := decode[[]favorites.Entry](t, env.do(t, http.MethodGet, "/api/favorites", ""))
	if len(list) != 1 || list[0].Route != "L" {
		t.Errorf("Unexpected favorites %+v", list)
	}

	w = env.do(t, http.MethodDelete, "/api/favorites", `{"station":"Bedford Av","route":"L"}`)
	if w.Code != http.StatusOK || decode[map[string]any](t, w)["message"] != "Favorite removed" {
		t.Errorf("Remove: %d %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/api/favorites", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected [] after remove, got %s", w.Body.String())
	}
}

func TestFavorites_BadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		body   string
	}{
		{name: "missing route", method: http.MethodPost, body: `{"station":"Court Sq"}`},
		{name: "empty body", method: http.MethodPost, body: ""},
		{name: "malformed json", method: http.MethodPost, body: `{"station":`},
		{name: "delete missing station", method: http.MethodDelete, body: `{"route":"G"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, "/api/favorites", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400", w.Code)
			}
			if decode[map[string]any](t, w)["error"] == nil {
				t.Error("Expected an error field")
			}
		})
	}
}

func TestFavorites_Unavailable(t *testing.T) {
	srv := New(0, Deps{})
	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", w.Code)
	}
}

func TestTranslate(t *testing.T) {
	env := newTestEnv(t)
	for _, lang := range []string{"en", "de", ""} {
		w := env.do(t, http.MethodGet, "/api/translate?lang="+lang, "")
		got := decode[map[string]string](t, w)
		if got["welcome"] != "Welcome to NYC Transit Hub" {
			t.Errorf("lang=%s: unexpected table %v", lang, got)
		}
		if cl := w.Header().Get("Content-Language"); cl != "en" {
			t.Errorf("lang=%s: Content-Language = %q, want en", lang, cl)
		}
	}
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodOptions, "/api/favorites", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("Preflight status = %d, want 204", w.Code)
	}
	w = env.do(t, http.MethodGet, "/api/health", "")
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Missing CORS header")
	}
}
