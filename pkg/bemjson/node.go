// Package bemjson models bemjson description trees and extracts the
// components they reference.
//
// A tree is built from three node kinds: Leaf (opaque scalar), Sequence
// (ordered children) and Record (optional block name plus optional content).
// The set is closed; only this package can add node kinds.
package bemjson

// Node is an element of a description tree.
type Node interface {
	node() // marker method restricting implementations to this package
}

// Leaf is a terminal value such as a text string. It has no block and no content.
type Leaf struct {
	Value any
}

// Sequence is an ordered list of nodes.
type Sequence []Node

// Record is an object-shaped node.
type Record struct {
	// Block is the raw value of the "block" field. nil means absent.
	// A well-formed record carries a string here.
	Block any
	// Content is the nested node, nil when absent.
	Content Node
}

func (Leaf) node()     {}
func (Sequence) node() {}
func (*Record) node()  {}

// Text returns a leaf holding s.
func Text(s string) Leaf {
	return Leaf{Value: s}
}

// Block returns a record for the named block with the given content.
// Passing no content leaves Content nil; several children become a Sequence.
func Block(name string, content ...Node) *Record {
	r := &Record{Block: name}
	switch len(content) {
	case 0:
	case 1:
		r.Content = content[0]
	default:
		r.Content = Sequence(content)
	}
	return r
}
