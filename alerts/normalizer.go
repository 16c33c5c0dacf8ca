// Package alerts fetches JSON service alert feeds and normalizes them into a
// flat, start-time ordered list.
package alerts

import (
	"context"
	"fmt"

	"github.com/nyctransithub/transit-hub/feed"
	"github.com/nyctransithub/transit-hub/internal/logging"
)

// Resolver maps an alert category to its feed URL
type Resolver interface {
	ResolveAlertCategory(id string) (string, bool)
}

// Fetcher retrieves a raw feed payload
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Normalizer produces service alerts for a category
type Normalizer struct {
	router  Resolver
	fetcher Fetcher
	log     logging.Logger
}

// NewNormalizer wires an alert normalizer
func NewNormalizer(router Resolver, fetcher Fetcher, log logging.Logger) *Normalizer {
	if log == nil {
		log = logging.Nop()
	}
	return &Normalizer{router: router, fetcher: fetcher, log: log}
}

// Fetch resolves, fetches and normalizes one alert category. An unknown
// category returns feed.ErrNotFound without a network call.
func (n *Normalizer) Fetch(ctx context.Context, category string) ([]ServiceAlert, error) {
	url, ok := n.router.ResolveAlertCategory(category)
	if !ok {
		return []ServiceAlert{}, fmt.Errorf("alert category %q: %w", category, feed.ErrNotFound)
	}
	data, err := n.fetcher.Fetch(ctx, url)
	if err != nil {
		return []ServiceAlert{}, err
	}
	f, err := ParseFeed(data)
	if err != nil {
		return []ServiceAlert{}, feed.DecodeError(url, err)
	}
	return Normalize(f), nil
}

// FetchOrEmpty is the total form of Fetch
func (n *Normalizer) FetchOrEmpty(ctx context.Context, category string) []ServiceAlert {
	alerts, err := n.Fetch(ctx, category)
	if err != nil {
		if feed.IsNotFound(err) {
			n.log.Debug("unknown alert category", "category", category)
		} else {
			n.log.Error("service alerts unavailable", "category", category, "kind", feed.KindOf(err).String(), "error", err)
		}
		return []ServiceAlert{}
	}
	return alerts
}
