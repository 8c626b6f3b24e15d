package jadzia

import (
	"slices"
	"strings"
)

// Sort returns a copy of m with keys ordered by weight and then by name, at
// every level. Universal selectors come first, then element and property
// names, ids, classes, attribute selectors, and at-rules last.
func Sort(m *Map) *Map {
	keys := m.Keys()
	slices.SortFunc(keys, func(a, b string) int {
		return strings.Compare(weight(a)+a, weight(b)+b)
	})

	out := &Map{}
	for _, k := range keys {
		v, _ := m.Get(k)
		if sub, ok := v.(*Map); ok {
			v = Sort(sub)
		}
		out.Set(k, v)
	}
	return out
}

func weight(key string) string {
	if key == "" {
		return "00"
	}
	switch key[0] {
	case '*':
		return "10"
	case '#':
		return "20"
	case '.':
		return "30"
	case '[':
		return "40"
	case '@':
		return "90"
	}
	return "15"
}
