package output

import (
	"fmt"
	"io"
)

// listNameKeys is the preference order for the one-line item name.
var listNameKeys = []string{"name", "display_name", "id"}

// writeList prints one line per top-level item. An empty sequence prints
// nothing.
func writeList(w io.Writer, data any) {
	switch t := data.(type) {
	case []any:
		for _, item := range t {
			fmt.Fprintln(w, listLine(item))
		}
	case nil:
	default:
		fmt.Fprintln(w, listLine(t))
	}
}

func listLine(item any) string {
	rec, ok := item.(Record)
	if !ok {
		return scalarText(item)
	}
	for _, key := range listNameKeys {
		v, ok := rec.Get(key)
		if ok && truthy(v) {
			return scalarText(v)
		}
	}
	return scalarText(rec)
}

// truthy mirrors the emptiness test used to skip a candidate name.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case Record:
		return len(t) > 0
	}
	return true
}
