package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_FieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Warn("feed fetch failed", "line_group", "ACE", "error", errors.New("HTTP 500"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["line_group"] != "ACE" {
		t.Errorf("line_group = %v", entry["line_group"])
	}
	if entry["error"] != "HTTP 500" {
		t.Errorf("error = %v", entry["error"])
	}
	if entry["message"] != "feed fetch failed" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info level, got %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug").With("component", "alerts")

	log.Info("normalized", "count", 3)
	out := buf.String()
	if !strings.Contains(out, `"component":"alerts"`) || !strings.Contains(out, `"count":3`) {
		t.Errorf("missing fields in %s", out)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("discarded", "error", errors.New("x"))
	log.With("k", "v").Info("discarded")
}
