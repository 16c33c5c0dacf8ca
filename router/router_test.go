package router

import (
	"strings"
	"testing"

	"github.com/nyctransithub/transit-hub/config"
)

func TestDefault_Tables(t *testing.T) {
	r := Default()

	groups := r.LineGroups()
	want := []string{"1234567S", "ACE", "BDFMFS", "G", "JZ", "L", "NQRW", "SIR"}
	if strings.Join(groups, ",") != strings.Join(want, ",") {
		t.Errorf("LineGroups() = %v, want %v", groups, want)
	}

	cats := r.AlertCategories()
	if len(cats) != 5 {
		t.Errorf("Expected 5 alert categories, got %v", cats)
	}
	if r.OutagesURL() == "" {
		t.Error("Expected an outages URL")
	}
	t.Logf("✓ %d line groups, %d alert categories", len(groups), len(cats))
}

func TestResolveLineGroup(t *testing.T) {
	r := Default()

	tests := []struct {
		name   string
		id     string
		wantOK bool
	}{
		{name: "upper case", id: "ACE", wantOK: true},
		{name: "lower case", id: "ace", wantOK: true},
		{name: "mixed case", id: "bDfMfS", wantOK: true},
		{name: "numeric group", id: "1234567s", wantOK: true},
		{name: "surrounding space", id: " L ", wantOK: true},
		{name: "unknown group", id: "XYZ", wantOK: false},
		{name: "empty id", id: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, ok := r.ResolveLineGroup(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("ResolveLineGroup(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if ok && url == "" {
				t.Error("Resolved URL should not be empty")
			}
			if !ok && url != "" {
				t.Errorf("Unresolved id returned URL %q", url)
			}
		})
	}
}

func TestResolveLineGroup_CaseFoldIsIdempotent(t *testing.T) {
	r := Default()
	for _, id := range r.LineGroups() {
		upper, okU := r.ResolveLineGroup(id)
		lower, okL := r.ResolveLineGroup(strings.ToLower(id))
		if upper != lower || okU != okL {
			t.Errorf("%s: %q/%v vs %q/%v", id, upper, okU, lower, okL)
		}
	}
}

func TestResolveAlertCategory(t *testing.T) {
	r := Default()

	if _, ok := r.ResolveAlertCategory("subway_alerts"); !ok {
		t.Error("subway_alerts should resolve")
	}
	if _, ok := r.ResolveAlertCategory("SUBWAY_ALERTS"); ok {
		t.Error("Alert categories match exactly")
	}
	if _, ok := r.ResolveAlertCategory("ferry_alerts"); ok {
		t.Error("Unknown category should not resolve")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.FeedsConfig{
		LineGroups:      map[string]string{"ace": "http://example.test/ace"},
		AlertCategories: map[string]string{"subway_alerts": "http://example.test/alerts"},
		OutagesURL:      "http://example.test/outages",
	}
	r := FromConfig(cfg)
	if url, ok := r.ResolveLineGroup("ACE"); !ok || url != "http://example.test/ace" {
		t.Errorf("Unexpected resolution %q/%v", url, ok)
	}
	if r.OutagesURL() != "http://example.test/outages" {
		t.Errorf("Unexpected outages URL %q", r.OutagesURL())
	}
}
