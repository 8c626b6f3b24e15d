package jadzia

import (
	"reflect"
	"slices"
)

// Value converts a plain Go value into a Node.
//
//   - nil and nil pointers become the empty node
//   - bools, integers, floats and strings become scalars
//   - slices and arrays become a List of converted elements
//   - maps with string keys become a *Map with keys in sorted order
//   - funcs of shape func(Options) Node, func(Options) (Node, error) and
//     func(Options) any become a Func
//
// Nodes are returned unchanged. Anything else is wrapped in Opaque.
func Value(v any) Node {
	switch x := v.(type) {
	case nil:
		return nil
	case Node:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case int:
		return Number(x)
	case int64:
		return Number(x)
	case float64:
		return Number(x)
	case []any:
		out := make(List, len(x))
		for i, e := range x {
			out[i] = Value(e)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		m := &Map{}
		for _, k := range keys {
			m.Set(k, Value(x[k]))
		}
		return m
	case func(Options) (Node, error):
		return Func(x)
	case func(Options) Node:
		return Func(func(o Options) (Node, error) { return x(o), nil })
	case func(Options) any:
		return Func(func(o Options) (Node, error) { return Value(x(o)), nil })
	}
	return reflectValue(reflect.ValueOf(v))
}

func reflectValue(rv reflect.Value) Node {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Value(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return String(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make(List, rv.Len())
		for i := range out {
			out[i] = Value(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		m := &Map{}
		for _, k := range keys {
			m.Set(k.String(), Value(rv.MapIndex(k).Interface()))
		}
		return m
	}
	return Opaque{Value: rv.Interface()}
}
