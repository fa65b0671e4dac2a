// Package nodes defines the two trees a translation produces: declarations
// (rendered into the header) and implementations (rendered into the source
// file). A node's position in its tree is its emission position.
package nodes

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Declaration is a node of the declaration tree.
type Declaration interface {
	Name() string
	Parent() Declaration
	Children() []Declaration
	// Signature is the type-and-name text that sibling ordering inspects
	// for references to other declarations.
	Signature() string
	Render() string
	declBase() *DeclBase
}

// DeclBase carries the tree links shared by every declaration kind.
// Custom node kinds embed it to satisfy Declaration.
type DeclBase struct {
	name     string
	parent   Declaration
	children []Declaration
}

// NewDeclBase returns a detached base with the given name.
func NewDeclBase(name string) DeclBase {
	return DeclBase{name: name}
}

func (b *DeclBase) Name() string        { return b.name }
func (b *DeclBase) Parent() Declaration { return b.parent }

// Children returns a copy of the child list.
func (b *DeclBase) Children() []Declaration {
	return append([]Declaration(nil), b.children...)
}

func (b *DeclBase) declBase() *DeclBase { return b }

func attach(parent Declaration, child Declaration) {
	if parent == nil {
		return
	}
	child.declBase().parent = parent
	pb := parent.declBase()
	pb.children = append(pb.children, child)
}

// Depth is the number of ancestors of d.
func Depth(d Declaration) int {
	depth := 0
	for p := d.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

func indent(d Declaration) string {
	return strings.Repeat("\t", Depth(d))
}

func renderChildren(sb *strings.Builder, children []Declaration) {
	for _, c := range children {
		sb.WriteString(c.Render())
		sb.WriteString("\n")
	}
}

// Walk visits root and its descendants depth first. Returning false from
// fn skips the node's children.
func Walk(root Declaration, fn func(Declaration) bool) {
	if root == nil || !fn(root) {
		return
	}
	for _, c := range root.declBase().children {
		Walk(c, fn)
	}
}

// ReorderChildren replaces parent's child list with ordered, which must be
// a permutation of the current children.
func ReorderChildren(parent Declaration, ordered []Declaration) error {
	pb := parent.declBase()
	if len(ordered) != len(pb.children) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("reorder of " + parent.Name() + " changes the number of children")
	}
	current := make(map[Declaration]int, len(pb.children))
	for _, c := range pb.children {
		current[c]++
	}
	for _, c := range ordered {
		if current[c] == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("reorder of " + parent.Name() + " introduces a foreign node " + c.Name())
		}
		current[c]--
	}
	pb.children = append(pb.children[:0:0], ordered...)
	return nil
}

// DataElements returns the DataElement children of d in order.
func DataElements(d Declaration) []*DataElement {
	var out []*DataElement
	for _, c := range d.declBase().children {
		if de, ok := c.(*DataElement); ok {
			out = append(out, de)
		}
	}
	return out
}

// Structs returns the Struct children of d in order.
func Structs(d Declaration) []*Struct {
	var out []*Struct
	for _, c := range d.declBase().children {
		if s, ok := c.(*Struct); ok {
			out = append(out, s)
		}
	}
	return out
}

// Functions returns the FunctionDeclaration children of d in order.
func Functions(d Declaration) []*FunctionDeclaration {
	var out []*FunctionDeclaration
	for _, c := range d.declBase().children {
		if f, ok := c.(*FunctionDeclaration); ok {
			out = append(out, f)
		}
	}
	return out
}

// Appender is the append-only handle handed to plugins. It can add new
// detached nodes under its target and nothing else.
type Appender struct {
	target Declaration
}

func NewAppender(target Declaration) Appender {
	return Appender{target: target}
}

// Target is the node new children are appended to.
func (a Appender) Target() Declaration {
	return a.target
}

// Append attaches child as the last child of the target. The child must
// not already belong to a tree.
func (a Appender) Append(child Declaration) error {
	if child == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cannot append a nil declaration")
	}
	if child.Parent() != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("declaration " + child.Name() + " already has a parent")
	}
	attach(a.target, child)
	return nil
}

// DeclarationSnapshot records the child lists of a subtree so that later
// changes can be checked to be purely additive.
type DeclarationSnapshot struct {
	root     Declaration
	children map[Declaration][]Declaration
}

func SnapshotDeclarations(root Declaration) DeclarationSnapshot {
	snap := DeclarationSnapshot{root: root, children: map[Declaration][]Declaration{}}
	Walk(root, func(d Declaration) bool {
		snap.children[d] = d.Children()
		return true
	})
	return snap
}

// Verify fails if any recorded node lost, replaced or reordered one of its
// recorded children.
func (s DeclarationSnapshot) Verify() error {
	for node, before := range s.children {
		after := node.declBase().children
		if len(after) < len(before) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("children removed from declaration " + describe(node))
		}
		for i := range before {
			if after[i] != before[i] {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("children reordered under declaration " + describe(node))
			}
		}
	}
	return nil
}

func describe(d Declaration) string {
	if d.Name() != "" {
		return d.Name()
	}
	return d.Signature()
}
