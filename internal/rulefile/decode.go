// Package rulefile reads rule trees from YAML and JSON documents and writes
// canonical nodes back as YAML.
package rulefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/jadzia"
)

// ExprTag marks a scalar holding an expression evaluated at conversion time.
const ExprTag = "!expr"

// SyntaxError describes a malformed rule file.
type SyntaxError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}

// LoadFile reads a rule tree from a .yaml, .yml or .json file.
func LoadFile(path string) (jadzia.Node, error) {
	// #nosec G304 - path comes from the configured include patterns
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Decode(data, path)
}

// Decode parses one YAML or JSON document into a rule tree. Mapping order is
// kept. The name is used in error messages only.
func Decode(data []byte, name string) (jadzia.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, yamlError(err, name)
	}

	d := decoder{name: name}
	return d.node(&doc)
}

type decoder struct {
	name  string
	depth int
}

func (d *decoder) node(n *yaml.Node) (jadzia.Node, error) {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > jadzia.MaxDepth {
		return nil, d.errorf(n, "document nests deeper than %d levels", jadzia.MaxDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.node(n.Content[0])

	case yaml.AliasNode:
		return d.node(n.Alias)

	case yaml.SequenceNode:
		list := make(jadzia.List, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.node(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case yaml.MappingNode:
		m := jadzia.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, d.errorf(k, "mapping keys must be scalars")
			}
			val, err := d.node(v)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, val)
		}
		return m, nil

	case yaml.ScalarNode:
		return d.scalar(n)
	}
	return nil, d.errorf(n, "unexpected node kind %d", n.Kind)
}

func (d *decoder) scalar(n *yaml.Node) (jadzia.Node, error) {
	tag := n.ShortTag()
	switch tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, d.errorf(n, "invalid boolean %q", n.Value)
		}
		return jadzia.Bool(b), nil
	case "!!int", "!!float":
		f, err := parseNumber(n)
		if err != nil {
			return nil, d.errorf(n, "invalid number %q", n.Value)
		}
		return jadzia.Number(f), nil
	case ExprTag:
		fn, err := compileExpr(n.Value)
		if err != nil {
			return nil, d.errorf(n, "invalid expression: %v", err)
		}
		return fn, nil
	}
	if strings.HasPrefix(tag, "!!") {
		// !!str, !!timestamp, !!binary: keep the text as written
		return jadzia.String(n.Value), nil
	}
	return jadzia.Opaque{Value: Tagged{Tag: tag, Value: n.Value}}, nil
}

// Tagged is a scalar carrying an application tag the compiler does not know.
type Tagged struct {
	Tag   string
	Value string
}

func parseNumber(n *yaml.Node) (float64, error) {
	if n.ShortTag() == "!!int" {
		var i int64
		if err := n.Decode(&i); err == nil {
			return float64(i), nil
		}
	}
	var f float64
	if err := n.Decode(&f); err != nil {
		return strconv.ParseFloat(n.Value, 64)
	}
	return f, nil
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return &SyntaxError{
		File:   d.name,
		Line:   n.Line,
		Column: n.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// yamlError converts a yaml.v3 parse error ("yaml: line N: msg") into a
// SyntaxError.
func yamlError(err error, name string) error {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	line := 0
	if rest, ok := strings.CutPrefix(msg, "line "); ok {
		if num, tail, found := strings.Cut(rest, ":"); found {
			if l, convErr := strconv.Atoi(num); convErr == nil {
				line = l
				msg = strings.TrimSpace(tail)
			}
		}
	}
	return &SyntaxError{File: name, Line: line, Msg: msg}
}
