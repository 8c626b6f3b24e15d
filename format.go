package jadzia

import (
	"fmt"
	"strings"
)

// Format writes a canonical mapping as CSS text, one declaration or brace
// per line. Values must be scalars, scalar lists or nested mappings.
func Format(m *Map, opts ...Option) (string, error) {
	o := resolveOptions(opts)
	w := formatter{indent: o.Indent}
	if err := w.block(m, nil); err != nil {
		return "", err
	}
	return strings.Join(w.lines, "\n"), nil
}

type formatter struct {
	indent int
	lines  []string
}

func (w *formatter) block(m *Map, path []string) error {
	pad := strings.Repeat(" ", len(path)*w.indent)
	for key, val := range m.All() {
		if sub, ok := val.(*Map); ok {
			w.lines = append(w.lines, pad+key+" {")
			if err := w.block(sub, append(path, key)); err != nil {
				return err
			}
			w.lines = append(w.lines, pad+"}")
			continue
		}
		text, err := scalarText(val)
		if err != nil {
			return &PathError{Path: append(clonePath(path), key), Err: err}
		}
		w.lines = append(w.lines, pad+key+": "+text+";")
	}
	return nil
}

// scalarText writes canonical values verbatim. Numbers and lists that did not
// come out of Unflatten are written without units.
func scalarText(n Node) (string, error) {
	switch v := n.(type) {
	case String:
		return string(v), nil
	case Bool, Number, List:
		return PropValue(v, "", Options{})
	}
	return "", fmt.Errorf("%w: %s in canonical node", ErrUnsupportedValue, Classify(n))
}
