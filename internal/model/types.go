package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Document is the full trip plan as stored in the itinerary JSON file.
type Document struct {
	Itinerary []DayPlan `json:"itinerary"`
}

// DayPlan represents one day of the trip.
type DayPlan struct {
	Date             string            `json:"date"`
	Route            string            `json:"route"`
	Morning          []ActivityEntry   `json:"morning"`
	AfternoonEvening *AfternoonSection `json:"afternoon_evening"`
}

// AfternoonSection holds everything planned after lunch.
type AfternoonSection struct {
	Activities            []ActivityEntry `json:"activities"`
	DinnerRecommendations []Restaurant    `json:"dinner_recommendations"`
	Accommodation         string          `json:"accommodation"`
}

// Restaurant represents a dinner recommendation.
type Restaurant struct {
	Name      string `json:"name"`
	Location  string `json:"location,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Activity represents a named point of interest.
type Activity struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Details     Details `json:"details,omitempty"`
}

// ActivityEntry is either a bare checklist label or a structured activity.
// An entry decoded from anything other than a string or an object is empty.
type ActivityEntry struct {
	Label    string
	Activity *Activity

	// fromString is set when the entry was decoded from a JSON string, so
	// that "" still counts as a label.
	fromString bool
}

// NewLabel returns a bare-string entry.
func NewLabel(label string) ActivityEntry {
	return ActivityEntry{Label: label, fromString: true}
}

// IsLabel reports whether the entry is a bare string, including "".
func (e ActivityEntry) IsLabel() bool {
	return e.Activity == nil && (e.fromString || e.Label != "")
}

// UnmarshalJSON accepts a JSON string or a JSON object.
func (e *ActivityEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return fmt.Errorf("failed to decode activity label: %w", err)
		}
		*e = NewLabel(label)
	case '{':
		var a Activity
		if err := json.Unmarshal(data, &a); err != nil {
			return fmt.Errorf("failed to decode activity: %w", err)
		}
		*e = ActivityEntry{Activity: &a}
	default:
		*e = ActivityEntry{}
	}
	return nil
}

// MarshalJSON writes the entry back in the shape it was read.
func (e ActivityEntry) MarshalJSON() ([]byte, error) {
	switch {
	case e.Activity != nil:
		return json.Marshal(e.Activity)
	case e.IsLabel():
		return json.Marshal(e.Label)
	default:
		return []byte("null"), nil
	}
}

// DetailField is one key/value pair of an activity's details.
type DetailField struct {
	Key   string
	Value string
}

// Details keeps activity details in document order.
type Details []DetailField

// UnmarshalJSON decodes a JSON object token by token so key order survives.
// Non-string values are kept as their raw JSON text. An array is keyed by
// position; any other kind yields no details.
func (d *Details) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*d = nil
		return nil
	}

	switch data[0] {
	case '{':
	case '[':
		return d.decodeArray(data)
	default:
		*d = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read details: %w", err)
	}

	var fields Details
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read detail key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected detail key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read detail %q: %w", key, err)
		}

		fields = append(fields, DetailField{Key: key, Value: detailValue(raw)})
	}

	*d = fields
	return nil
}

func (d *Details) decodeArray(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to read details: %w", err)
	}
	fields := make(Details, len(items))
	for i, raw := range items {
		fields[i] = DetailField{Key: strconv.Itoa(i), Value: detailValue(raw)}
	}
	*d = fields
	return nil
}

// detailValue unquotes JSON strings and keeps every other value, null
// included, as its raw text.
func detailValue(raw json.RawMessage) string {
	if len(raw) > 0 && raw[0] == '"' {
		var value string
		if err := json.Unmarshal(raw, &value); err == nil {
			return value
		}
	}
	return string(raw)
}

// MarshalJSON writes the details as an object in their stored order.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
