package accessibility

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString decodes a JSON string, number or bool as text. Objects and
// arrays are rejected.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '{', '[':
		return fmt.Errorf("unsupported value %s", data)
	default:
		// numbers and booleans keep their literal spelling
		*f = FlexString(data)
	}
	return nil
}

func (f *FlexString) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Record is one upstream elevator or escalator outage. Keys are matched
// exactly, so "ada" does not fill ADA. The upstream feed has used both
// equipmenttype and equipmentType, so both are kept.
type Record struct {
	Station             *FlexString
	TrainNo             *FlexString
	Equipment           *FlexString
	EquipmentType       *FlexString
	EquipmentTypeLegacy *FlexString
	ADA                 *FlexString
	EstimatedReturn     *FlexString
	Reason              *FlexString
}

// UnmarshalJSON implements json.Unmarshaler. Keys other than the ones
// projected are ignored whatever their value.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fields := []struct {
		key string
		dst **FlexString
	}{
		{"station", &r.Station},
		{"trainno", &r.TrainNo},
		{"equipment", &r.Equipment},
		{"equipmenttype", &r.EquipmentType},
		{"equipmentType", &r.EquipmentTypeLegacy},
		{"ADA", &r.ADA},
		{"estimatedreturntoservice", &r.EstimatedReturn},
		{"reason", &r.Reason},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		var fs *FlexString
		if err := json.Unmarshal(v, &fs); err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = fs
	}
	return nil
}

// Outage is the projected record returned to clients
type Outage struct {
	Station    string `json:"station"`
	Equipment  string `json:"equipment"`
	Type       string `json:"type"`
	Accessible string `json:"accessible"`
	Reason     string `json:"reason"`
	ReturnTime string `json:"return_time"`
	Line       string `json:"line"`
}

// ParseRecords decodes the upstream outage array
func ParseRecords(data []byte) ([]Record, error) {
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
