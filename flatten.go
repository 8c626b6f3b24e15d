package jadzia

import "strings"

// Record is one property assignment of a flattened rule tree.
type Record struct {
	// Selector holds the selector fragments from the root down to the
	// property, before composition.
	Selector []string
	// Prop is the raw property name.
	Prop string
	// Value is a scalar or a scalar list.
	Value Node
}

// Flatten walks tree depth-first and returns its property assignments in
// source order. Deferred computations are resolved with opts, comma-separated
// keys are split into one path per selector.
func Flatten(tree Node, opts Options) ([]Record, error) {
	f := flattener{opts: opts}
	if err := f.walk(tree, nil, 0); err != nil {
		return nil, err
	}
	return f.records, nil
}

type flattener struct {
	opts    Options
	records []Record
}

func (f *flattener) walk(n Node, path []string, depth int) error {
	for {
		if depth > MaxDepth {
			return &PathError{Path: clonePath(path), Err: ErrTooDeep}
		}
		fn, ok := n.(Func)
		if !ok || fn == nil {
			break
		}
		next, err := fn(f.opts)
		if err != nil {
			return &PathError{Path: clonePath(path), Err: err}
		}
		n = next
		depth++
	}

	switch kind := Classify(n); kind {
	case KindEmpty:
		return nil

	case KindList:
		for _, e := range n.(List) {
			if err := f.walk(e, path, depth+1); err != nil {
				return err
			}
		}
		return nil

	case KindMap:
		for key, val := range n.(*Map).All() {
			for _, frag := range splitSelector(key) {
				if err := f.walk(val, append(clonePath(path), frag), depth+1); err != nil {
					return err
				}
			}
		}
		return nil

	case KindBool, KindNumber, KindString, KindScalarList:
		if len(path) == 0 {
			return pathError(path, "%w: %s value without a property name", ErrUnsupportedValue, kind)
		}
		f.records = append(f.records, Record{
			Selector: clonePath(path[:len(path)-1]),
			Prop:     path[len(path)-1],
			Value:    n,
		})
		return nil

	case KindSymbol:
		return pathError(path, "%w: %T", ErrUnsupportedValue, opaqueValue(n))

	case KindFunc:
		// resolved above
	}
	return pathError(path, "%w: %T", ErrUnsupportedValue, n)
}

// splitSelector splits a key on commas, dropping blank parts. The empty key
// is kept as a single empty fragment so its properties stay on the parent.
func splitSelector(key string) []string {
	if key == "" {
		return []string{""}
	}
	parts := strings.Split(key, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clonePath(path []string) []string {
	return append([]string(nil), path...)
}

func opaqueValue(n Node) any {
	if o, ok := n.(Opaque); ok {
		return o.Value
	}
	return n
}
