// Package accessibility projects the elevator and escalator outage feed into
// a flat list for display.
package accessibility

import (
	"context"

	"github.com/nyctransithub/transit-hub/feed"
	"github.com/nyctransithub/transit-hub/internal/logging"
)

// Accessibility flag values
const (
	AccessibleYes = "Yes"
	AccessibleNo  = "No"
)

// Project maps upstream records to outages one to one, preserving order
func Project(records []Record) []Outage {
	out := make([]Outage, 0, len(records))
	for _, r := range records {
		out = append(out, project(r))
	}
	return out
}

func project(r Record) Outage {
	typ := r.EquipmentType.String()
	if typ == "" {
		typ = r.EquipmentTypeLegacy.String()
	}
	accessible := AccessibleNo
	if r.ADA.String() == "Y" {
		accessible = AccessibleYes
	}
	return Outage{
		Station:    r.Station.String(),
		Equipment:  r.Equipment.String(),
		Type:       typ,
		Accessible: accessible,
		Reason:     r.Reason.String(),
		ReturnTime: r.EstimatedReturn.String(),
		Line:       r.TrainNo.String(),
	}
}

// Fetcher retrieves a raw feed payload
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Service loads the current outages from a single feed URL
type Service struct {
	url     string
	fetcher Fetcher
	log     logging.Logger
}

// NewService wires an outage service for url
func NewService(url string, fetcher Fetcher, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{url: url, fetcher: fetcher, log: log}
}

// Fetch retrieves and projects the outage feed
func (s *Service) Fetch(ctx context.Context) ([]Outage, error) {
	if s.url == "" {
		return []Outage{}, feed.ErrNotFound
	}
	data, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return []Outage{}, err
	}
	recs, err := ParseRecords(data)
	if err != nil {
		return []Outage{}, feed.DecodeError(s.url, err)
	}
	return Project(recs), nil
}

// FetchOrEmpty is the total form of Fetch
func (s *Service) FetchOrEmpty(ctx context.Context) []Outage {
	outages, err := s.Fetch(ctx)
	if err != nil {
		s.log.Error("accessibility outages unavailable", "kind", feed.KindOf(err).String(), "error", err)
		return []Outage{}
	}
	return outages
}
