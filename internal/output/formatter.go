package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Renderer writes command results in the format chosen for the invocation.
// Data goes to Out; messages meant for the operator go to Err.
type Renderer struct {
	out       io.Writer
	err       io.Writer
	format    Format
	quiet     bool
	networkID string
	now       func() time.Time
	styles    styles
	errStyles styles
}

// Options configures a Renderer.
type Options struct {
	Out       io.Writer
	Err       io.Writer
	Format    Format
	Quiet     bool
	NoColor   bool
	NetworkID string
	// Now overrides the envelope clock, mainly for tests.
	Now func() time.Time
}

// New builds a Renderer. Nil writers default to stdout and stderr and an
// empty format defaults to table.
func New(opts Options) *Renderer {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Renderer{
		out:       opts.Out,
		err:       opts.Err,
		format:    opts.Format,
		quiet:     opts.Quiet,
		networkID: opts.NetworkID,
		now:       opts.Now,
		styles:    newStyles(opts.Out, ColorEnabled(opts.Out, opts.NoColor)),
		errStyles: newStyles(opts.Err, ColorEnabled(opts.Err, opts.NoColor)),
	}
}

// Format returns the active output format.
func (r *Renderer) Format() Format { return r.format }

// Column describes one table column. Key is looked up in each row record;
// dotted keys reach into nested records ("guest_network.enabled").
type Column struct {
	Header string
	Key    string
}

type renderConfig struct {
	columns   []Column
	meta      *Meta
	networkID string
	warnings  []string
}

// Option adjusts a single Render call.
type Option func(*renderConfig)

// WithColumns supplies the column layout used by table output.
func WithColumns(cols ...Column) Option {
	return func(c *renderConfig) { c.columns = append(c.columns, cols...) }
}

// WithMeta replaces the envelope meta block. A zero timestamp is filled in
// from the renderer clock.
func WithMeta(m Meta) Option {
	return func(c *renderConfig) { c.meta = &m }
}

// WithNetworkID sets the envelope network id for one call, typically once
// the default network has been resolved.
func WithNetworkID(id string) Option {
	return func(c *renderConfig) { c.networkID = id }
}

// WithWarnings appends to the envelope warnings.
func WithWarnings(warnings ...string) Option {
	return func(c *renderConfig) { c.warnings = append(c.warnings, warnings...) }
}

// Render writes data tagged with schema in the renderer's format.
func (r *Renderer) Render(data any, schema string, opts ...Option) error {
	var cfg renderConfig
	for _, o := range opts {
		o(&cfg)
	}
	s, err := r.serialize(data, schema, cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, s)
	return err
}

func (r *Renderer) envelope(data any, schema string, cfg renderConfig) Envelope {
	meta := Meta{NetworkID: r.networkID}
	if cfg.networkID != "" {
		meta.NetworkID = cfg.networkID
	}
	if cfg.meta != nil {
		meta = *cfg.meta
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = r.now()
	}
	meta.Warnings = append(append([]string(nil), meta.Warnings...), cfg.warnings...)
	return Envelope{Schema: schema, Data: data, Meta: meta}
}

// serialize serializes one payload to a string in the renderer's format.
func (r *Renderer) serialize(data any, schema string, cfg renderConfig) (string, error) {
	switch r.format {
	case FormatJSON:
		return encodeJSON(r.envelope(data, schema, cfg).Record())
	case FormatYAML:
		return encodeYAML(r.envelope(data, schema, cfg).Record())
	case FormatText:
		var buf bytes.Buffer
		writeText(&buf, Normalize(data))
		return buf.String(), nil
	case FormatList:
		var buf bytes.Buffer
		writeList(&buf, Normalize(data))
		return buf.String(), nil
	case FormatTable:
		var buf bytes.Buffer
		r.writeTable(&buf, Normalize(data), schema, cfg.columns)
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported format: %q", r.format)
	}
}

func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return buf.String(), nil
}

func encodeYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("yaml marshal: %w", err)
	}
	return buf.String(), nil
}
