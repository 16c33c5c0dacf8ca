package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Feed is the JSON rendition of a GTFS-RT alerts FeedMessage
type Feed struct {
	Entity []Entity `json:"entity"`
}

// Entity wraps one alert
type Entity struct {
	ID    *string `json:"id"`
	Alert *Alert  `json:"alert"`
}

// Alert carries the fields used to build a ServiceAlert. Every field is
// optional in the upstream document.
type Alert struct {
	ActivePeriod    []Period          `json:"active_period"`
	InformedEntity  []InformedEntity  `json:"informed_entity"`
	HeaderText      *TranslatedString `json:"header_text"`
	DescriptionText *TranslatedString `json:"description_text"`
	Mercury         *MercuryAlert     `json:"transit_realtime.mercury_alert"`
}

// Period is an active window in epoch seconds
type Period struct {
	Start *Timestamp `json:"start"`
	End   *Timestamp `json:"end"`
}

// InformedEntity selects what an alert applies to
type InformedEntity struct {
	AgencyID string `json:"agency_id"`
	RouteID  string `json:"route_id"`
	StopID   string `json:"stop_id"`
}

// TranslatedString is a list of per-language texts
type TranslatedString struct {
	Translation []Translation `json:"translation"`
}

// Translation is one language rendition of a text
type Translation struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// MercuryAlert is the MTA extension carried on each alert
type MercuryAlert struct {
	CreatedAt *Timestamp `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at"`
	AlertType *string    `json:"alert_type"`
}

// Timestamp is an epoch-seconds value that accepts JSON numbers and numeric
// strings.
type Timestamp int64

// UnmarshalJSON implements json.Unmarshaler
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		*ts = Timestamp(i)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s", data)
	}
	*ts = Timestamp(int64(f))
	return nil
}

func (ts *Timestamp) int64Ptr() *int64 {
	if ts == nil {
		return nil
	}
	v := int64(*ts)
	return &v
}

// ServiceAlert is the normalized alert returned to clients
type ServiceAlert struct {
	ID        string   `json:"id"`
	AlertType *string  `json:"alert_type"`
	Text      string   `json:"text"`
	Routes    []string `json:"routes"`
	Stops     []string `json:"stops"`
	StartTime *int64   `json:"start_time"`
	CreatedAt *int64   `json:"created_at"`
	UpdatedAt *int64   `json:"updated_at"`
}

// ParseFeed decodes an alerts JSON document
func ParseFeed(data []byte) (*Feed, error) {
	var f Feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
