package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Format represents the output serialization format.
type Format string

const (
	FormatTable Format = "table"
	FormatList  Format = "list"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatText  Format = "text"
)

// Formats lists every accepted --output value in help order.
var Formats = []Format{FormatTable, FormatList, FormatJSON, FormatYAML, FormatText}

// ParseFormat validates s as an output format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q: must be one of %s", s, formatNames())
}

// Structured reports whether f is a machine-readable envelope format.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

var _ pflag.Value = (*Format)(nil)

// String implements pflag.Value.
func (f *Format) String() string { return string(*f) }

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

func formatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Meta is the metadata block of the structured envelope.
type Meta struct {
	Timestamp time.Time
	NetworkID string
	Warnings  []string
}

// TimestampLayout is ISO-8601 UTC with a literal Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// record renders the meta block in envelope key order. An empty network id
// is emitted as null and warnings are never null.
func (m Meta) record() Record {
	var networkID any
	if m.NetworkID != "" {
		networkID = m.NetworkID
	}
	warnings := make([]any, 0, len(m.Warnings))
	for _, w := range m.Warnings {
		warnings = append(warnings, w)
	}
	return Record{
		{Key: "timestamp", Value: m.Timestamp.UTC().Format(TimestampLayout)},
		{Key: "network_id", Value: networkID},
		{Key: "warnings", Value: warnings},
	}
}

// Envelope is the {schema, data, meta} wrapper used by json and yaml output.
type Envelope struct {
	Schema string
	Data   any
	Meta   Meta
}

// Record returns the envelope as an ordered mapping with data normalized.
func (e Envelope) Record() Record {
	return Record{
		{Key: "schema", Value: e.Schema},
		{Key: "data", Value: Normalize(e.Data)},
		{Key: "meta", Value: e.Meta.record()},
	}
}
