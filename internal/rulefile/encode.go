package rulefile

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/jadzia"
)

// Encode writes m as a YAML document, keeping key order.
func Encode(m *jadzia.Map) ([]byte, error) {
	n, err := toYAML(m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAML(n jadzia.Node) (*yaml.Node, error) {
	switch v := n.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *jadzia.Map:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, val := range v.All() {
			child, err := toYAML(val)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				child,
			)
		}
		return out, nil
	case jadzia.List:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, e := range v {
			child, err := toYAML(e)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, child)
		}
		return out, nil
	case jadzia.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}, nil
	case jadzia.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(float64(v), 'f', -1, 64)}, nil
	case jadzia.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(v))}, nil
	}
	return nil, fmt.Errorf("%w: %s cannot be written as YAML", jadzia.ErrUnsupportedValue, jadzia.Classify(n))
}
