package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TableTitle derives a table caption from a schema tag:
// "eero.network.list/v1" becomes "Network List".
func TableTitle(schema string) string {
	base, _, _ := strings.Cut(schema, "/")
	base = strings.Replace(base, "eero.", "", 1)
	return cases.Title(language.Und).String(strings.ReplaceAll(base, ".", " "))
}

// writeTable renders rows selected by cols. Without columns, or for a
// payload that is not a sequence of records, it falls back to text.
func (r *Renderer) writeTable(w io.Writer, data any, schema string, cols []Column) {
	items, ok := data.([]any)
	if rec, single := data.(Record); single {
		items, ok = []any{rec}, true
	}
	if len(cols) == 0 || !ok {
		writeText(w, data)
		return
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rec, isRec := item.(Record)
		if !isRec {
			writeText(w, data)
			return
		}
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cellText(lookup(rec, c.Key))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return
	}

	if title := TableTitle(schema); title != "" {
		fmt.Fprintln(w, r.styles.render(r.styles.title, title))
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	// Style the header after alignment so escape codes do not skew widths.
	header, body, _ := strings.Cut(buf.String(), "\n")
	fmt.Fprintln(w, r.styles.render(r.styles.header, strings.TrimRight(header, " ")))
	for _, line := range strings.SplitAfter(body, "\n") {
		if line == "" {
			continue
		}
		io.WriteString(w, strings.TrimRight(line, " \n")+"\n")
	}
}

// lookup resolves a dotted key path inside rec.
func lookup(rec Record, key string) any {
	var cur any = rec
	for _, part := range strings.Split(key, ".") {
		r, ok := cur.(Record)
		if !ok {
			return nil
		}
		if cur, ok = r.Get(part); !ok {
			return nil
		}
	}
	return cur
}

func cellText(v any) string {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return "-"
		}
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = cellText(item)
		}
		return strings.Join(parts, ", ")
	case string:
		if t == "" {
			return "-"
		}
		return t
	}
	return scalarText(v)
}
