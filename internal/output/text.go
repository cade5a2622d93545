package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// writeText renders a normalized payload as indented "Label: value" lines.
// Top-level sequences separate their items with "---".
func writeText(w io.Writer, data any) {
	switch t := data.(type) {
	case Record:
		writeTextRecord(w, t, "")
	case []any:
		for i, item := range t {
			if i > 0 {
				fmt.Fprintln(w, "---")
			}
			if rec, ok := item.(Record); ok {
				writeTextRecord(w, rec, "")
				continue
			}
			fmt.Fprintln(w, scalarText(item))
		}
	default:
		fmt.Fprintln(w, scalarText(t))
	}
}

func writeTextRecord(w io.Writer, rec Record, prefix string) {
	for _, f := range rec {
		label := Label(f.Key)
		switch v := f.Value.(type) {
		case Record:
			fmt.Fprintf(w, "%s%s:\n", prefix, label)
			writeTextRecord(w, v, prefix+"  ")
		case []any:
			writeTextSequence(w, label, v, prefix)
		default:
			fmt.Fprintf(w, "%s%s: %s\n", prefix, label, scalarText(v))
		}
	}
}

func writeTextSequence(w io.Writer, label string, items []any, prefix string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "%s%s: (none)\n", prefix, label)
		return
	}
	if allScalars(items) {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = scalarText(item)
		}
		fmt.Fprintf(w, "%s%s: %s\n", prefix, label, strings.Join(parts, ", "))
		return
	}
	fmt.Fprintf(w, "%s%s:\n", prefix, label)
	for _, item := range items {
		switch v := item.(type) {
		case Record:
			writeTextRecord(w, v, prefix+"  ")
			fmt.Fprintf(w, "%s  ---\n", prefix)
		case []any:
			writeTextSequence(w, "-", v, prefix+"  ")
		default:
			fmt.Fprintf(w, "%s  - %s\n", prefix, scalarText(v))
		}
	}
}

func allScalars(items []any) bool {
	for _, item := range items {
		switch item.(type) {
		case nil, string, bool, int64, float64:
		default:
			return false
		}
	}
	return true
}

// scalarText formats a leaf value: nil is "-", booleans are yes/no.
func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case Record:
		b, err := t.MarshalJSON()
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

// Label turns a snake_case key into a title-cased label ("public_ip" ->
// "Public Ip").
func Label(key string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
}
