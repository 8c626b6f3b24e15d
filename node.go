package jadzia

import (
	"iter"
	"slices"
)

// Node is one element of a rule tree. The concrete variants are Bool, Number,
// String, Func, List, *Map and Opaque. A nil Node is empty.
type Node interface {
	node()
}

// Bool is a boolean scalar.
type Bool bool

// Number is a numeric scalar.
type Number float64

// String is a string scalar.
type String string

// Func is a deferred computation. It is resolved with the options of the
// conversion, possibly returning another Func.
type Func func(opts Options) (Node, error)

// List is a sequence of nodes. A list of scalars is a single space-joined
// property value, any other list groups sibling rule sets.
type List []Node

// Opaque wraps a caller value the compiler does not understand.
// It is never converted to text.
type Opaque struct {
	Value any
}

func (Bool) node() {}
func (Number) node() {}
func (String) node() {}
func (Func) node() {}
func (List) node() {}
func (*Map) node() {}
func (Opaque) node() {}

// Kind is the classification of a node.
type Kind int

const (
	KindEmpty Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunc
	KindMap
	KindScalarList
	KindList
	KindSymbol
)

var kindNames = [...]string{
	KindEmpty:      "empty",
	KindBool:       "boolean",
	KindNumber:     "number",
	KindString:     "string",
	KindFunc:       "deferred",
	KindMap:        "mapping",
	KindScalarList: "scalar list",
	KindList:       "list",
	KindSymbol:     "symbol",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsScalar reports whether k is a boolean, number or string.
func (k Kind) IsScalar() bool {
	return k == KindBool || k == KindNumber || k == KindString
}

// Classify returns the kind of n. It looks at the node as it is now: a Func
// is classified as deferred, not by what it would return.
func Classify(n Node) Kind {
	switch v := n.(type) {
	case nil:
		return KindEmpty
	case Bool:
		return KindBool
	case Number:
		return KindNumber
	case String:
		return KindString
	case Func:
		if v == nil {
			return KindEmpty
		}
		return KindFunc
	case *Map:
		if v.Len() == 0 {
			return KindEmpty
		}
		return KindMap
	case List:
		if len(v) == 0 {
			return KindEmpty
		}
		for _, e := range v {
			if !Classify(e).IsScalar() {
				return KindList
			}
		}
		return KindScalarList
	case Opaque:
		return KindSymbol
	}
	return KindSymbol
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value Node
}

// KV builds an entry, converting v with Value.
func KV(key string, v any) Entry {
	return Entry{Key: key, Value: Value(v)}
}

// Map is a string-keyed mapping that remembers insertion order.
// The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]Node
}

// NewMap returns a map holding entries in order. Repeated keys keep their
// first position and the last value.
func NewMap(entries ...Entry) *Map {
	m := &Map{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Len returns the number of keys. It is safe on a nil map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores v under key and returns m. An existing key keeps its position.
func (m *Map) Set(key string, v Node) *Map {
	if m.values == nil {
		m.values = make(map[string]Node)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of m. Lists and nested maps are copied, other
// nodes are shared.
func (m *Map) Clone() *Map {
	out := &Map{}
	for k, v := range m.All() {
		out.Set(k, cloneNode(v))
	}
	return out
}

func cloneNode(n Node) Node {
	switch v := n.(type) {
	case *Map:
		if v == nil {
			return v
		}
		return v.Clone()
	case List:
		out := make(List, len(v))
		for i, e := range v {
			out[i] = cloneNode(e)
		}
		return out
	}
	return n
}
