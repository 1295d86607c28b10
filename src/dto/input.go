package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// TradeInput is a partially-specified trade payload. Every field is
// tri-state: absent, explicitly null, or set to a value. The distinction
// matters on the update path, where an absent field leaves the stored
// column untouched while an explicit null clears it.
type TradeInput struct {
	raw map[string]json.RawMessage
}

func (in *TradeInput) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	in.raw = raw
	return nil
}

// Has reports whether the field appeared in the payload at all,
// including as an explicit null.
func (in TradeInput) Has(field string) bool {
	_, ok := in.raw[field]
	return ok
}

// IsNull reports whether the field was present as an explicit JSON null.
func (in TradeInput) IsNull(field string) bool {
	value, ok := in.raw[field]
	return ok && isNullLiteral(value)
}

// StringField returns the field as a string. ok is false when the field is
// absent, null or not a string.
func (in TradeInput) StringField(field string) (string, bool) {
	value, ok := in.raw[field]
	if !ok || isNullLiteral(value) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", false
	}
	return s, true
}

// FloatField returns the field as a float64, accepting either a JSON number
// or a numeric string (storage and older clients send both).
func (in TradeInput) FloatField(field string) (float64, bool) {
	value, ok := in.raw[field]
	if !ok || isNullLiteral(value) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(value, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IntField returns the field as an int, accepting a JSON number or a
// numeric string. Fractional numbers are truncated.
func (in TradeInput) IntField(field string) (int, bool) {
	f, ok := in.FloatField(field)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// TagsField returns the tags field as a slice, accepting either an array of
// strings or a single comma-joined string.
func (in TradeInput) TagsField() ([]string, bool) {
	value, ok := in.raw["tags"]
	if !ok || isNullLiteral(value) {
		return nil, false
	}
	var tags []string
	if err := json.Unmarshal(value, &tags); err == nil {
		return tags, true
	}
	var joined string
	if err := json.Unmarshal(value, &joined); err != nil {
		return nil, false
	}
	var split []string
	for _, tag := range strings.Split(joined, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			split = append(split, trimmed)
		}
	}
	return split, true
}

func isNullLiteral(value json.RawMessage) bool {
	return string(bytes.TrimSpace(value)) == "null"
}
