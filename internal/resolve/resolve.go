// Package resolve finds the resource an operator named on the command line
// inside a freshly fetched list.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/fulviofreitas/eeroctl/internal/exitcode"
	"github.com/fulviofreitas/eeroctl/internal/model"
)

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 3

// NotFoundError reports a target that matched nothing. It maps to exit
// code 5.
type NotFoundError struct {
	Kind        string
	Query       string
	Suggestions []string
	// ListCommand is the command that lists valid targets.
	ListCommand string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Query)
}

// ExitCode implements exitcode.Coder.
func (e *NotFoundError) ExitCode() exitcode.Code { return exitcode.NotFound }

// Hint implements exitcode.Hinter.
func (e *NotFoundError) Hint() string {
	if len(e.Suggestions) > 0 {
		return "Did you mean: " + strings.Join(e.Suggestions, ", ") + "?"
	}
	if e.ListCommand != "" {
		return "Run '" + e.ListCommand + "' to see available targets."
	}
	return ""
}

// matcher extracts the identifiers of an item, most specific first. Exact
// keys are compared verbatim, the rest case-insensitively.
type matcher[T any] struct {
	kind    string
	list    string
	exact   func(T) []string
	folded  func(T) []string
	display func(T) string
}

// find scans items in order: first for an exact key, then for a
// case-insensitive name. The first hit wins.
func (m matcher[T]) find(items []T, query string) (T, error) {
	query = strings.TrimSpace(query)
	for _, item := range items {
		for _, key := range m.exact(item) {
			if key != "" && key == query {
				return item, nil
			}
		}
	}
	for _, item := range items {
		for _, key := range m.folded(item) {
			if key != "" && strings.EqualFold(key, query) {
				return item, nil
			}
		}
	}
	var zero T
	return zero, &NotFoundError{
		Kind:        m.kind,
		Query:       query,
		Suggestions: m.suggest(items, query),
		ListCommand: m.list,
	}
}

func (m matcher[T]) suggest(items []T, query string) []string {
	type scored struct {
		name string
		dist int
	}
	var hits []scored
	seen := make(map[string]bool)
	q := strings.ToLower(query)
	for _, item := range items {
		best := maxSuggestDistance + 1
		for _, key := range m.folded(item) {
			if key == "" {
				continue
			}
			if d := levenshtein.ComputeDistance(q, strings.ToLower(key)); d < best {
				best = d
			}
		}
		name := m.display(item)
		if best <= maxSuggestDistance && name != "" && !seen[name] {
			seen[name] = true
			hits = append(hits, scored{name: name, dist: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}

// Eero finds a node by id or serial, then by name or location.
func Eero(nodes []model.Eero, query string) (model.Eero, error) {
	return matcher[model.Eero]{
		kind:    "Eero",
		list:    "eeroctl eero list",
		exact:   func(e model.Eero) []string { return []string{e.ID, e.Serial} },
		folded:  func(e model.Eero) []string { return []string{e.Name, e.Location, e.Serial, e.MACAddress} },
		display: func(e model.Eero) string { return e.Name },
	}.find(nodes, query)
}

// Device finds a client by id or MAC, then by nickname, hostname or
// display name. MAC comparison ignores case and accepts '-' separators.
func Device(devices []model.Device, query string) (model.Device, error) {
	return matcher[model.Device]{
		kind: "Device",
		list: "eeroctl device list",
		exact: func(d model.Device) []string {
			return []string{d.ID, NormalizeMAC(d.MAC)}
		},
		folded: func(d model.Device) []string {
			return []string{d.Nickname, d.Hostname, d.DisplayName}
		},
		display: func(d model.Device) string { return d.Name() },
	}.find(devices, normalizeQuery(query))
}

// Profile finds a profile by id, then by name.
func Profile(profiles []model.Profile, query string) (model.Profile, error) {
	return matcher[model.Profile]{
		kind:    "Profile",
		list:    "eeroctl profile list",
		exact:   func(p model.Profile) []string { return []string{p.ID} },
		folded:  func(p model.Profile) []string { return []string{p.Name} },
		display: func(p model.Profile) string { return p.Name },
	}.find(profiles, query)
}

// Network finds a network by id, then by name.
func Network(networks []model.Network, query string) (model.Network, error) {
	return matcher[model.Network]{
		kind:    "Network",
		list:    "eeroctl network list",
		exact:   func(n model.Network) []string { return []string{n.ID} },
		folded:  func(n model.Network) []string { return []string{n.Name} },
		display: func(n model.Network) string { return n.Name },
	}.find(networks, query)
}

// NormalizeMAC upper-cases a MAC address and converts '-' separators to ':'.
// Strings that are not MAC-shaped come back unchanged.
func NormalizeMAC(s string) string {
	if !looksLikeMAC(s) {
		return s
	}
	return strings.ToUpper(strings.ReplaceAll(s, "-", ":"))
}

func normalizeQuery(q string) string {
	return NormalizeMAC(strings.TrimSpace(q))
}

func looksLikeMAC(s string) bool {
	if len(s) != 17 {
		return false
	}
	for i, r := range s {
		if i%3 == 2 {
			if r != ':' && r != '-' {
				return false
			}
			continue
		}
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
