package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is a mapping that keeps insertion order through json and yaml
// encoding. Plain Go maps are sorted by key on output; Record is not.
type Record []Field

// Recorder is implemented by payload types that project themselves into an
// ordered Record for rendering.
type Recorder interface {
	Record() Record
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key, or appends it when absent.
func (r Record) Set(key string, value any) Record {
	for i, f := range r {
		if f.Key == key {
			r[i].Value = value
			return r
		}
	}
	return append(r, Field{Key: key, Value: value})
}


// MarshalJSON writes the fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalJSON(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := marshalJSON(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits a mapping node so key order survives encoding.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range r {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
		value := &yaml.Node{}
		if err := value.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Normalize converts an arbitrary payload into the closed set of shapes the
// renderers understand: Record, []any, string, bool, int64, float64 and nil.
// Values outside that set fall back to their string form, so rendering never
// fails because of payload shape.
func Normalize(v any) any {
	if v == nil {
		return nil
	}
	// A nil pointer may still satisfy Recorder, error or fmt.Stringer
	// through a value method, which would dereference it.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	switch t := v.(type) {
	case Record:
		out := make(Record, len(t))
		for i, f := range t {
			out[i] = Field{Key: f.Key, Value: Normalize(f.Value)}
		}
		return out
	case Recorder:
		return Normalize(t.Record())
	case string, bool, int64:
		return t
	case int:
		return int64(t)
	case float64:
		return normalizeFloat(t)
	case float32:
		return normalizeFloat(float64(t))
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return t.String()
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(time.RFC3339)
	case time.Duration:
		return t.String()
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}
	return normalizeReflect(reflect.ValueOf(v))
}

func normalizeFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}

func normalizeReflect(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return normalizeFloat(rv.Float())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Sprint(rv.Interface())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		out := make(Record, 0, len(keys))
		for _, k := range keys {
			out = append(out, Field{Key: k, Value: Normalize(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())})
		}
		return out
	}
	return fmt.Sprint(rv.Interface())
}
