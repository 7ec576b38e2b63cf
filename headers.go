package shuttle

import (
	"sort"
	"strings"
)

// headerEntry holds one header name with its ordered values.
type headerEntry struct {
	name   string
	values []string
}

// Headers is an ordered header multimap. Names are compared
// case-insensitively while the original casing and insertion order are
// preserved for output. A name may carry multiple values.
//
// Headers is a value type: every mutator returns a new Headers and leaves
// the receiver untouched, so values may be shared freely across requests.
type Headers struct {
	entries []headerEntry
}

// NewHeaders builds a Headers from a plain map. Keys are inserted in
// sorted order so the result is deterministic.
func NewHeaders(m map[string]string) Headers {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var h Headers
	for _, k := range keys {
		h = h.With(k, m[k])
	}
	return h
}

// Get returns the first value for name, matching case-insensitively.
func (h Headers) Get(name string) (string, bool) {
	for _, e := range h.entries {
		if strings.EqualFold(e.name, name) {
			return e.values[0], true
		}
	}
	return "", false
}

// Values returns all values for name in insertion order, or nil when the
// header is absent.
func (h Headers) Values(name string) []string {
	for _, e := range h.entries {
		if strings.EqualFold(e.name, name) {
			out := make([]string, len(e.values))
			copy(out, e.values)
			return out
		}
	}
	return nil
}

// Has reports whether a header with the given name exists.
func (h Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Names returns the header names in declared order with original casing.
func (h Headers) Names() []string {
	names := make([]string, len(h.entries))
	for i, e := range h.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of distinct header names.
func (h Headers) Len() int {
	return len(h.entries)
}

// With returns a copy with all values for name replaced by value. An
// existing entry keeps its position but adopts the casing of name; a new
// entry is appended.
func (h Headers) With(name, value string) Headers {
	out := h.clone()
	for i, e := range out.entries {
		if strings.EqualFold(e.name, name) {
			out.entries[i] = headerEntry{name: name, values: []string{value}}
			return out
		}
	}
	out.entries = append(out.entries, headerEntry{name: name, values: []string{value}})
	return out
}

// WithAdded returns a copy with value appended to any existing values
// for name.
func (h Headers) WithAdded(name, value string) Headers {
	out := h.clone()
	for i, e := range out.entries {
		if strings.EqualFold(e.name, name) {
			out.entries[i].values = append(out.entries[i].values, value)
			return out
		}
	}
	out.entries = append(out.entries, headerEntry{name: name, values: []string{value}})
	return out
}

// Without returns a copy with every value for name removed.
func (h Headers) Without(name string) Headers {
	out := Headers{entries: make([]headerEntry, 0, len(h.entries))}
	for _, e := range h.entries {
		if !strings.EqualFold(e.name, name) {
			out.entries = append(out.entries, e.clone())
		}
	}
	return out
}

// Wire renders the headers as "Name: value" lines in declared order with
// original casing, one line per value.
func (h Headers) Wire() []string {
	var lines []string
	for _, e := range h.entries {
		for _, v := range e.values {
			lines = append(lines, e.name+": "+v)
		}
	}
	return lines
}

func (h Headers) clone() Headers {
	out := Headers{entries: make([]headerEntry, len(h.entries))}
	for i, e := range h.entries {
		out.entries[i] = e.clone()
	}
	return out
}

func (e headerEntry) clone() headerEntry {
	values := make([]string, len(e.values))
	copy(values, e.values)
	return headerEntry{name: e.name, values: values}
}
