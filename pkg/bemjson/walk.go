package bemjson

import (
	"fmt"
	"strings"
)

// ExtractComponents walks the tree and returns the distinct block names it
// references, in order of first occurrence. A nil or scalar tree yields an
// empty slice.
func ExtractComponents(root Node) ([]string, error) {
	var names []string
	if err := collect(root, "$", &names); err != nil {
		return nil, err
	}
	return Unique(names), nil
}

// collect appends every block name found under n to out. Duplicates are kept;
// callers de-duplicate once the walk is complete.
func collect(n Node, path string, out *[]string) error {
	switch v := n.(type) {
	case nil, Leaf:
		return nil
	case Sequence:
		for i, child := range v {
			if err := collect(child, fmt.Sprintf("%s[%d]", path, i), out); err != nil {
				return err
			}
		}
		return nil
	case *Record:
		if v == nil {
			return nil
		}
		name, ok, err := blockName(v.Block, path)
		if err != nil {
			return err
		}
		if ok {
			*out = append(*out, name)
		}
		return collect(v.Content, path+".content", out)
	default:
		return &MalformedDescriptionError{Path: path, Value: n, Msg: "unknown node kind"}
	}
}

// blockName validates a raw block value. Null and "" count as absent.
func blockName(raw any, path string) (string, bool, error) {
	if raw == nil {
		return "", false, nil
	}
	name, isString := raw.(string)
	if !isString {
		return "", false, &MalformedDescriptionError{Path: path, Value: raw, Msg: "block must be a string"}
	}
	if name == "" {
		return "", false, nil
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false, &MalformedDescriptionError{Path: path, Value: raw, Msg: "block must be a single path segment"}
	}
	return name, true, nil
}

// Unique returns names without duplicates, keeping the first occurrence of each.
func Unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
