package loader

import (
	"fmt"

	"github.com/leapstack-labs/bemdeps/pkg/bemjson"
	"gopkg.in/yaml.v3"
)

// Field names of a bemjson record.
const (
	blockKey   = "block"
	contentKey = "content"
)

// convert maps a decoded YAML node onto the bemjson tree.
func convert(name string, n *yaml.Node) (bemjson.Node, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return convert(name, n.Alias)

	case yaml.SequenceNode:
		seq := make(bemjson.Sequence, 0, len(n.Content))
		for _, child := range n.Content {
			node, err := convert(name, child)
			if err != nil {
				return nil, err
			}
			seq = append(seq, node)
		}
		return seq, nil

	case yaml.MappingNode:
		rec := &bemjson.Record{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			switch key.Value {
			case blockKey:
				raw, err := scalarValue(name, val)
				if err != nil {
					return nil, err
				}
				rec.Block = raw
			case contentKey:
				content, err := convert(name, val)
				if err != nil {
					return nil, err
				}
				rec.Content = content
			}
		}
		return rec, nil

	case yaml.ScalarNode:
		raw, err := scalarValue(name, n)
		if err != nil {
			return nil, err
		}
		return bemjson.Leaf{Value: raw}, nil

	default:
		return nil, &SourceReadError{File: name, Line: n.Line, Message: fmt.Sprintf("unsupported node kind %d", n.Kind)}
	}
}

// scalarValue decodes n into a plain Go value. Strings stay strings, so that a
// block given as a number or boolean can be told apart later.
func scalarValue(name string, n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		return scalarValue(name, n.Alias)
	}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, &SourceReadError{File: name, Line: n.Line, Message: "invalid value", Err: err}
	}
	return v, nil
}
