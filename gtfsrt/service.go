package gtfsrt

import (
	"context"
	"fmt"

	"github.com/nyctransithub/transit-hub/feed"
	"github.com/nyctransithub/transit-hub/internal/logging"
	"github.com/nyctransithub/transit-hub/stations"
)

// Resolver maps a line group to its trip update feed URL
type Resolver interface {
	ResolveLineGroup(id string) (string, bool)
}

// Fetcher retrieves a raw feed payload
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StationLookup resolves stop ids to display names and coordinates
type StationLookup interface {
	Lookup(stopID string) stations.Resolved
}

// Service produces train updates for a line group
type Service struct {
	router  Resolver
	fetcher Fetcher
	catalog StationLookup
	log     logging.Logger
}

// NewService wires a train update service
func NewService(router Resolver, fetcher Fetcher, catalog StationLookup, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{router: router, fetcher: fetcher, catalog: catalog, log: log}
}

// Trains resolves, fetches, decodes and enriches the feed for lineGroup.
// An unknown line group returns feed.ErrNotFound without a network call;
// fetch and decode failures return a *feed.Error. The slice is never nil.
func (s *Service) Trains(ctx context.Context, lineGroup string) ([]TrainUpdate, error) {
	url, ok := s.router.ResolveLineGroup(lineGroup)
	if !ok {
		return []TrainUpdate{}, fmt.Errorf("line group %q: %w", lineGroup, feed.ErrNotFound)
	}

	payload, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return []TrainUpdate{}, err
	}

	records, err := Decode(payload)
	if err != nil {
		return []TrainUpdate{}, feed.DecodeError(url, err)
	}

	warnings := NewWarningAggregator()
	trains := make([]TrainUpdate, 0, len(records))
	for _, rec := range records {
		trains = append(trains, s.enrich(rec, warnings))
	}
	warnings.LogAll(s.log, lineGroup)
	return trains, nil
}

// TrainsOrEmpty is the total form of Trains: failures are logged and an
// empty slice is returned.
func (s *Service) TrainsOrEmpty(ctx context.Context, lineGroup string) []TrainUpdate {
	trains, err := s.Trains(ctx, lineGroup)
	if err != nil {
		if feed.IsNotFound(err) {
			s.log.Debug("unknown line group", "line_group", lineGroup)
		} else {
			s.log.Error("realtime trains unavailable", "line_group", lineGroup, "kind", feed.KindOf(err).String(), "error", err)
		}
		return []TrainUpdate{}
	}
	return trains
}

func (s *Service) enrich(rec StopTimeRecord, warnings *WarningAggregator) TrainUpdate {
	if rec.TripID == "" {
		warnings.Add(WarningNoTripID, rec.RouteID)
	}
	if rec.StopID == "" {
		warnings.Add(WarningNoStopID, rec.TripID)
	}
	res := s.catalog.Lookup(rec.StopID)
	if !res.Found && rec.StopID != "" {
		warnings.Add(WarningStopNotInCatalog, rec.StopID)
	}
	return TrainUpdate{
		TripID:    rec.TripID,
		Station:   res.Name,
		Arrival:   rec.Arrival,
		Departure: rec.Departure,
		Lat:       res.Lat,
		Lon:       res.Lon,
	}
}
