package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

var fixedNow = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 600000000, time.UTC) }

func newRenderer(format output.Format) (*output.Renderer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	r := output.New(output.Options{
		Out:     &out,
		Err:     &errOut,
		Format:  format,
		NoColor: true,
		Now:     fixedNow,
	})
	return r, &out, &errOut
}

func render(t *testing.T, format output.Format, data any, schema string, opts ...output.Option) string {
	t.Helper()
	r, out, _ := newRenderer(format)
	require.NoError(t, r.Render(data, schema, opts...))
	return out.String()
}

func TestTextRenderingRules(t *testing.T) {
	data := map[string]any{
		"a": 1,
		"b": map[string]any{"c": true, "d": []any{}},
	}
	got := render(t, output.FormatText, data, "eero.test.show/v1")
	assert.Equal(t, "A: 1\nB:\n  C: yes\n  D: (none)\n", got)
}

func TestTextSequences(t *testing.T) {
	data := output.Record{
		{Key: "dns_servers", Value: []string{"1.1.1.1", "8.8.8.8"}},
		{Key: "flags", Value: []bool{true, false}},
		{Key: "gateway", Value: nil},
		{Key: "nodes", Value: []output.Record{
			{{Key: "name", Value: "Den"}},
			{{Key: "name", Value: "Office"}},
		}},
	}
	want := "Dns Servers: 1.1.1.1, 8.8.8.8\n" +
		"Flags: yes, no\n" +
		"Gateway: -\n" +
		"Nodes:\n" +
		"  Name: Den\n" +
		"  ---\n" +
		"  Name: Office\n" +
		"  ---\n"
	assert.Equal(t, want, render(t, output.FormatText, data, ""))
}

func TestTextTopLevelSequence(t *testing.T) {
	data := []map[string]any{{"id": "1"}, {"id": "2"}}
	assert.Equal(t, "Id: 1\n---\nId: 2\n", render(t, output.FormatText, data, ""))
}

func TestJSONEnvelope(t *testing.T) {
	got := render(t, output.FormatJSON, output.Record{{Key: "name", Value: "Home"}}, "eero.network.show/v1")
	want := `{
  "schema": "eero.network.show/v1",
  "data": {
    "name": "Home"
  },
  "meta": {
    "timestamp": "2024-01-02T03:04:05.600000Z",
    "network_id": null,
    "warnings": []
  }
}
`
	assert.Equal(t, want, got)
}

func TestEnvelopeNetworkIDAndWarnings(t *testing.T) {
	var out bytes.Buffer
	r := output.New(output.Options{Out: &out, Format: output.FormatJSON, NetworkID: "12345", Now: fixedNow, NoColor: true})
	require.NoError(t, r.Render([]any{}, "eero.device.list/v1", output.WithWarnings("partial data")))

	var env map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	meta := env["meta"].(map[string]any)
	assert.Equal(t, "12345", meta["network_id"])
	assert.Equal(t, []any{"partial data"}, meta["warnings"])
	assert.Equal(t, []any{}, env["data"])
}

func TestJSONAndYAMLAreEquivalent(t *testing.T) {
	data := map[string]any{
		"name":    "Home",
		"clients": 12,
		"speed":   map[string]any{"down": 512.5, "up": 20.25},
		"nodes": []map[string]any{
			{"location": "Den", "gateway": true, "ip": nil},
			{"location": "Office", "gateway": false, "ip": "192.168.4.2"},
		},
		"tags": []string{},
	}

	var fromJSON, fromYAML any
	require.NoError(t, json.Unmarshal([]byte(render(t, output.FormatJSON, data, "eero.network.show/v1")), &fromJSON))
	require.NoError(t, yaml.Unmarshal([]byte(render(t, output.FormatYAML, data, "eero.network.show/v1")), &fromYAML))

	// Route the YAML tree through JSON so numeric types line up.
	b, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	var yamlAsJSON any
	require.NoError(t, json.Unmarshal(b, &yamlAsJSON))

	delete(fromJSON.(map[string]any)["meta"].(map[string]any), "timestamp")
	delete(yamlAsJSON.(map[string]any)["meta"].(map[string]any), "timestamp")
	assert.Equal(t, fromJSON, yamlAsJSON)
}

func TestYAMLPreservesRecordOrder(t *testing.T) {
	data := output.Record{{Key: "zeta", Value: 1}, {Key: "alpha", Value: 2}}
	got := render(t, output.FormatYAML, data, "eero.test/v1")
	assert.Contains(t, got, "data:\n  zeta: 1\n  alpha: 2\n")
	assert.Regexp(t, `^schema: eero.test/v1\ndata:`, got)
}

func TestRenderingIsIdempotent(t *testing.T) {
	data := map[string]any{"a": []any{1, "two", map[string]any{"x": nil}}}
	for _, f := range output.Formats {
		first := render(t, f, data, "eero.test.show/v1")
		second := render(t, f, data, "eero.test.show/v1")
		assert.Equal(t, first, second, "format %s", f)
	}
}

func TestListRendering(t *testing.T) {
	data := []map[string]any{
		{"id": "n1", "name": ""},
		{"id": "d1", "display_name": "Living Room TV"},
		{"id": "x1"},
	}
	assert.Equal(t, "n1\nLiving Room TV\nx1\n", render(t, output.FormatList, data, ""))

	assert.Equal(t, "Home\n", render(t, output.FormatList, map[string]any{"id": "1", "name": "Home"}, ""))
	assert.Equal(t, "a\nb\n", render(t, output.FormatList, []string{"a", "b"}, ""))
	assert.Equal(t, `{"status":"ok"}`+"\n", render(t, output.FormatList, map[string]any{"status": "ok"}, ""))
}

func TestEmptyListRendersNothing(t *testing.T) {
	assert.Empty(t, render(t, output.FormatList, []any{}, "eero.device.list/v1"))
	assert.Empty(t, render(t, output.FormatList, []map[string]any(nil), "eero.device.list/v1"))
}

func TestTable(t *testing.T) {
	data := []map[string]any{
		{"id": "1", "name": "Home", "guest": map[string]any{"enabled": true}},
		{"id": "22", "name": "Cabin", "guest": map[string]any{"enabled": false}},
	}
	got := render(t, output.FormatTable, data, "eero.network.list/v1",
		output.WithColumns(
			output.Column{Header: "ID", Key: "id"},
			output.Column{Header: "Name", Key: "name"},
			output.Column{Header: "Guest", Key: "guest.enabled"},
		))
	want := "Network List\n" +
		"ID  Name   Guest\n" +
		"1   Home   yes\n" +
		"22  Cabin  no\n"
	assert.Equal(t, want, got)
}

func TestTableFallsBackToText(t *testing.T) {
	data := map[string]any{"a": 1, "b": map[string]any{"c": true, "d": []any{}}}
	assert.Equal(t,
		render(t, output.FormatText, data, "eero.test.show/v1"),
		render(t, output.FormatTable, data, "eero.test.show/v1"))
}

func TestTableTitle(t *testing.T) {
	assert.Equal(t, "Network List", output.TableTitle("eero.network.list/v1"))
	assert.Equal(t, "Device Show", output.TableTitle("eero.device.show/v1"))
	assert.Equal(t, "Troubleshoot Doctor", output.TableTitle("eero.troubleshoot.doctor/v1"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Public Ip", output.Label("public_ip"))
	assert.Equal(t, "Name", output.Label("name"))
}

type stringerID int

func (s stringerID) String() string { return "node-" + string(rune('0'+int(s))) }

func TestNormalizeNeverFails(t *testing.T) {
	when := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	data := map[string]any{
		"when":   when,
		"nan":    math.NaN(),
		"err":    errors.New("boom"),
		"id":     stringerID(3),
		"ch":     make(chan int),
		"counts": map[int]int{1: 2},
	}
	for _, f := range output.Formats {
		r, _, _ := newRenderer(f)
		assert.NoError(t, r.Render(data, "eero.test/v1"), "format %s", f)
	}
	got := output.Normalize(data).(output.Record)
	when2, _ := got.Get("when")
	assert.Equal(t, "2024-05-06T07:08:09Z", when2)
	nan, _ := got.Get("nan")
	assert.Equal(t, "NaN", nan)
	id, _ := got.Get("id")
	assert.Equal(t, "node-3", id)
}

type node struct {
	Name string
	Up   bool
}

func (n node) Record() output.Record {
	return output.Record{{Key: "name", Value: n.Name}, {Key: "up", Value: n.Up}}
}

func TestRecorderPayloads(t *testing.T) {
	got := render(t, output.FormatText, []node{{Name: "Den", Up: true}}, "")
	assert.Equal(t, "Name: Den\nUp: yes\n", got)
}

type valueErr struct{ msg string }

func (e valueErr) Error() string { return e.msg }

func TestNilPointersRenderAsNull(t *testing.T) {
	data := map[string]any{
		"node": (*node)(nil),
		"id":   (*stringerID)(nil),
		"err":  (*valueErr)(nil),
	}
	for _, f := range output.Formats {
		r, _, _ := newRenderer(f)
		assert.NotPanics(t, func() {
			assert.NoError(t, r.Render(data, "eero.test/v1"), "format %s", f)
		}, "format %s", f)
	}

	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(render(t, output.FormatJSON, data, "eero.test/v1")), &env))
	assert.Equal(t, map[string]any{"node": nil, "id": nil, "err": nil}, env["data"])

	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(render(t, output.FormatYAML, data, "eero.test/v1")), &fromYAML))
	assert.Equal(t, map[string]any{"node": nil, "id": nil, "err": nil}, fromYAML["data"])

	assert.Equal(t, "Err: -\nId: -\nNode: -\n", render(t, output.FormatText, data, ""))
}

func TestTextScalarSequenceWithNull(t *testing.T) {
	data := output.Record{{Key: "hops", Value: []any{1, nil}}}
	assert.Equal(t, "Hops: 1, -\n", render(t, output.FormatText, data, ""))
}

func TestMutation(t *testing.T) {
	r, out, _ := newRenderer(output.FormatTable)
	require.NoError(t, r.Mutation(true, "reboot", "Den", ""))
	require.NoError(t, r.Mutation(false, "block", "TV", ""))
	assert.Equal(t, "✓ reboot: Den\n• block: TV\n", out.String())

	r, out, _ = newRenderer(output.FormatJSON)
	require.NoError(t, r.Mutation(true, "reboot", "Den", ""))
	var env map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.Equal(t, "eero.mutation.reboot/v1", env["schema"])
	assert.Equal(t, map[string]any{"changed": true, "action": "reboot", "target": "Den"}, env["data"])
}

func TestQuietSuppressesInformational(t *testing.T) {
	var out, errOut bytes.Buffer
	r := output.New(output.Options{Out: &out, Err: &errOut, Quiet: true, NoColor: true})
	require.NoError(t, r.Mutation(true, "reboot", "Den", ""))
	r.Success("done")
	r.Info("note")
	r.Warning("careful")
	r.Error("failed", "try again")
	assert.Empty(t, out.String())
	assert.Equal(t, "Warning: careful\nError: failed\nHint: try again\n", errOut.String())
}

func TestMessagesAvoidStructuredStdout(t *testing.T) {
	r, out, errOut := newRenderer(output.FormatJSON)
	r.Success("saved")
	assert.Empty(t, out.String())
	assert.Equal(t, "✓ saved\n", errOut.String())
}

func TestParseFormat(t *testing.T) {
	f, err := output.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, output.FormatJSON, f)

	_, err = output.ParseFormat("xml")
	assert.ErrorContains(t, err, "table, list, json, yaml, text")
}
