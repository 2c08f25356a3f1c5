package aggregate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Keys returns the keys of the Aggregate in sorted order.
func (a Aggregate) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the Mapping stored under key. The key is matched
// case-insensitively since aggregate keys are always upper case.
func (a Aggregate) Get(key string) (Mapping, bool) {
	m, ok := a[strings.ToUpper(key)]
	return m, ok
}

// Lookup resolves a dot-separated path such as "MAIN.log.dir" or
// "PROJECTS.active.0". The first segment selects the config file; later
// segments walk nested mappings by key and sequences by index.
func (a Aggregate) Lookup(path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	segments := strings.Split(path, ".")
	m, ok := a.Get(segments[0])
	if !ok {
		return nil, false
	}

	var cur any = map[string]any(m)
	for _, seg := range segments[1:] {
		switch node := cur.(type) {
		case map[string]any:
			cur, ok = node[seg]
		case map[any]any:
			cur, ok = lookupAny(node, seg)
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur, ok = node[i], true
		default:
			return nil, false
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// lookupAny finds seg in a mapping with non-string keys by comparing the
// text form of each key, so "80" matches the integer key 80.
func lookupAny(m map[any]any, seg string) (any, bool) {
	if v, ok := m[seg]; ok {
		return v, true
	}
	for k, v := range m {
		if fmt.Sprint(k) == seg {
			return v, true
		}
	}
	return nil, false
}
