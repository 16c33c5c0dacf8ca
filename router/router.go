// Package router maps line-group and alert-category identifiers to the
// upstream feed URLs that serve them.
package router

import (
	"sort"
	"strings"

	"github.com/nyctransithub/transit-hub/config"
)

// Router is an immutable lookup table of feed endpoints
type Router struct {
	lineGroups map[string]string
	categories map[string]string
	outagesURL string
}

// New builds a router. Line-group keys are folded to upper case; alert
// categories are kept as given.
func New(lineGroups, categories map[string]string, outagesURL string) *Router {
	r := &Router{
		lineGroups: make(map[string]string, len(lineGroups)),
		categories: make(map[string]string, len(categories)),
		outagesURL: outagesURL,
	}
	for id, url := range lineGroups {
		r.lineGroups[strings.ToUpper(strings.TrimSpace(id))] = url
	}
	for id, url := range categories {
		r.categories[id] = url
	}
	return r
}

// Default returns the router for the public MTA feeds
func Default() *Router {
	return FromConfig(config.Defaults().Feeds)
}

// FromConfig builds a router from the feeds section of the app config
func FromConfig(cfg config.FeedsConfig) *Router {
	return New(cfg.LineGroups, cfg.AlertCategories, cfg.OutagesURL)
}

// ResolveLineGroup returns the trip-update feed for a line group.
// Matching is case-insensitive, so "ace" and "ACE" resolve identically.
func (r *Router) ResolveLineGroup(id string) (string, bool) {
	url, ok := r.lineGroups[strings.ToUpper(strings.TrimSpace(id))]
	return url, ok
}

// ResolveAlertCategory returns the alert feed for a category id (exact match)
func (r *Router) ResolveAlertCategory(id string) (string, bool) {
	url, ok := r.categories[id]
	return url, ok
}

// OutagesURL returns the elevator and escalator outage feed
func (r *Router) OutagesURL() string { return r.outagesURL }

// LineGroups returns the known line-group ids, sorted
func (r *Router) LineGroups() []string { return sortedKeys(r.lineGroups) }

// AlertCategories returns the known alert-category ids, sorted
func (r *Router) AlertCategories() []string { return sortedKeys(r.categories) }

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
