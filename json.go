package jadzia

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON writes the map as a JSON object, keeping key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalNode(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNode(n Node) ([]byte, error) {
	switch v := n.(type) {
	case nil:
		return []byte("null"), nil
	case *Map:
		if v == nil {
			return []byte("null"), nil
		}
		return v.MarshalJSON()
	case Bool:
		return json.Marshal(bool(v))
	case Number:
		return json.Marshal(float64(v))
	case String:
		return json.Marshal(string(v))
	case List:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalNode(e)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %s cannot be written as JSON", ErrUnsupportedValue, Classify(n))
}
