// Package model maps vendor API payloads onto typed resource records.
// Parsing is lenient: missing fields take explicit defaults and unknown
// fields are ignored.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IDFromURL returns the last path segment of a resource URL such as
// "/2.2/networks/3401709".
func IDFromURL(url string) string {
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// Text is a string field the API sometimes sends as a number or wraps in
// an object ({"status": "online"}, {"value": "a@b.c"}, {"name": "ISP"}).
type Text string

var textObjectKeys = []string{"status", "value", "name", "address", "city"}

// UnmarshalJSON accepts strings, numbers, booleans, null and wrapping objects.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*t = ""
		for _, k := range textObjectKeys {
			if raw, ok := obj[k]; ok {
				var inner Text
				if err := inner.UnmarshalJSON(raw); err == nil && inner != "" {
					*t = inner
					return nil
				}
			}
		}
	case '[':
		*t = ""
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Number is a float field the API sometimes sends as a string.
type Number float64

// UnmarshalJSON accepts numbers, numeric strings and null.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// Flag is a boolean field that tolerates null and string forms.
type Flag bool

// UnmarshalJSON accepts true/false, "true"/"false", numbers, null and an
// object carrying an "enabled" field.
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Enabled Flag `json:"enabled"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			*f = false
			return nil
		}
		*f = obj.Enabled
		return nil
	}
	switch string(b) {
	case "true", `"true"`, "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// parseTime parses an RFC 3339 timestamp, returning nil when absent or
// malformed.
func parseTime(s Text) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, string(s)); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// optional maps an empty string to nil so renderers print null or "-".
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func firstNonEmpty(values ...Text) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

// ExtractList pulls a resource list out of a response data field. The API
// returns lists bare, under a named key, or under {"key": {"data": [...]}}.
func ExtractList(data json.RawMessage, key string) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode %s list: %w", key, err)
		}
		return items, nil
	}
	if data[0] != '{' {
		return nil, fmt.Errorf("decode %s list: unexpected payload", key)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", key, err)
	}
	for _, k := range []string{key, "data"} {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		return ExtractList(raw, key)
	}
	return nil, nil
}

// parseList decodes every item of a list payload with parse.
func parseList[T any](data json.RawMessage, key string, parse func(json.RawMessage) (T, error)) ([]T, error) {
	items, err := ExtractList(data, key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := parse(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
