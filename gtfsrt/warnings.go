package gtfsrt

import (
	"sort"
	"strings"

	"github.com/nyctransithub/transit-hub/internal/logging"
)

// Warning type constants
const (
	WarningStopNotInCatalog = "stop_not_in_catalog"
	WarningNoStopID         = "no_stop_id"
	WarningNoTripID         = "no_trip_id"
)

const maxExamples = 3

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects degraded-data warnings during one decode call
// so they can be logged once instead of per record. Not safe for concurrent use.
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	info := w.warnings[warningType]
	if info == nil {
		info = &warningInfo{examples: make([]string, 0, maxExamples)}
		w.warnings[warningType] = info
	}
	info.count++
	if len(info.examples) < maxExamples && !containsExample(info.examples, exampleID) {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns the occurrences recorded for warningType
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// Examples returns up to three distinct example ids for warningType
func (w *WarningAggregator) Examples(warningType string) []string {
	if info := w.warnings[warningType]; info != nil {
		return append([]string{}, info.examples...)
	}
	return nil
}

// LogAll emits one warning per collected type
func (w *WarningAggregator) LogAll(log logging.Logger, lineGroup string) {
	if len(w.warnings) == 0 {
		return
	}
	types := make([]string, 0, len(w.warnings))
	for t := range w.warnings {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		info := w.warnings[t]
		log.Warn(describeWarning(t),
			"line_group", lineGroup,
			"warning", t,
			"count", info.count,
			"examples", strings.Join(info.examples, ", "))
	}
}

func describeWarning(warningType string) string {
	switch warningType {
	case WarningStopNotInCatalog:
		return "stops not found in station catalog, using raw stop id"
	case WarningNoStopID:
		return "stop time updates with no stop_id"
	case WarningNoTripID:
		return "trip updates with no trip_id"
	default:
		return "unknown feed issue"
	}
}

func containsExample(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
