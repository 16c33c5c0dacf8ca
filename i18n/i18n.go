// Package i18n serves the static UI string tables.
package i18n

// DefaultLanguage is used for unknown language codes
const DefaultLanguage = "en"

var tables = map[string]map[string]string{
	"en": {
		"welcome":            "Welcome to NYC Transit Hub",
		"dashboard":          "Dashboard",
		"favorites":          "Favorites",
		"add_favorite":       "Add Favorite",
		"your_favorites":     "Your Favorites:",
		"accessibility_info": "Accessibility Info",
		"filter_accessible":  "Filter by Accessibility",
		"filter_line":        "Filter by Line",
		"filter_station":     "Filter by Station",
		"apply_filters":      "Apply Filters",
		"service_alerts":     "Service Alerts",
		"alert_type":         "Alert Type",
		"transit_map":        "Transit Map",
	},
}

// Lookup returns a copy of the table for lang, or the English table
func Lookup(lang string) map[string]string {
	t, ok := tables[lang]
	if !ok {
		t = tables[DefaultLanguage]
	}
	out := make(map[string]string, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Has reports whether a table exists for lang
func Has(lang string) bool {
	_, ok := tables[lang]
	return ok
}
