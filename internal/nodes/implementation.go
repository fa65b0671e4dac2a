package nodes

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Implementation is a node of the implementation tree. Every node points
// at the declaration that justifies it.
type Implementation interface {
	Parent() Implementation
	Children() []Implementation
	Declaration() Declaration
	Render() string
	implBase() *ImplBase
}

// ImplBase carries the tree links shared by every implementation kind.
type ImplBase struct {
	decl     Declaration
	parent   Implementation
	children []Implementation
}

// NewImplBase returns a detached base justified by decl.
func NewImplBase(decl Declaration) ImplBase {
	return ImplBase{decl: decl}
}

func (b *ImplBase) Declaration() Declaration { return b.decl }
func (b *ImplBase) Parent() Implementation   { return b.parent }

func (b *ImplBase) Children() []Implementation {
	return append([]Implementation(nil), b.children...)
}

func (b *ImplBase) implBase() *ImplBase { return b }

func attachImpl(parent Implementation, child Implementation) {
	if parent == nil {
		return
	}
	child.implBase().parent = parent
	pb := parent.implBase()
	pb.children = append(pb.children, child)
}

func implDepth(n Implementation) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

func implIndent(n Implementation) string {
	return strings.Repeat("\t", implDepth(n))
}

// renderLines prefixes each line with the node's indentation.
func renderLines(n Implementation, lines ...string) string {
	ind := implIndent(n)
	for i, l := range lines {
		lines[i] = ind + l
	}
	return strings.Join(lines, "\n")
}

// WalkImplementations visits root and its descendants depth first.
func WalkImplementations(root Implementation, fn func(Implementation) bool) {
	if root == nil || !fn(root) {
		return
	}
	for _, c := range root.implBase().children {
		WalkImplementations(c, fn)
	}
}

// FunctionDefinitions returns every function definition under root.
func FunctionDefinitions(root Implementation) []*FunctionDefinition {
	var out []*FunctionDefinition
	WalkImplementations(root, func(n Implementation) bool {
		if fd, ok := n.(*FunctionDefinition); ok {
			out = append(out, fd)
			return false
		}
		return true
	})
	return out
}

// ImplAppender is the append-only handle plugins receive for the
// implementation tree.
type ImplAppender struct {
	target Implementation
}

func NewImplAppender(target Implementation) ImplAppender {
	return ImplAppender{target: target}
}

func (a ImplAppender) Target() Implementation {
	return a.target
}

// Append attaches child as the last child of the target. The child must be
// detached and justified by a declaration.
func (a ImplAppender) Append(child Implementation) error {
	if child == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cannot append a nil implementation")
	}
	if child.Declaration() == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("implementation node has no justifying declaration")
	}
	if child.Parent() != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("implementation node already has a parent")
	}
	attachImpl(a.target, child)
	return nil
}

// ImplementationSnapshot is the implementation-tree counterpart of
// DeclarationSnapshot.
type ImplementationSnapshot struct {
	children map[Implementation][]Implementation
}

func SnapshotImplementations(root Implementation) ImplementationSnapshot {
	snap := ImplementationSnapshot{children: map[Implementation][]Implementation{}}
	WalkImplementations(root, func(n Implementation) bool {
		snap.children[n] = n.Children()
		return true
	})
	return snap
}

func (s ImplementationSnapshot) Verify() error {
	for node, before := range s.children {
		after := node.implBase().children
		if len(after) < len(before) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("children removed from implementation of " + describe(node.Declaration()))
		}
		for i := range before {
			if after[i] != before[i] {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("children reordered under implementation of " + describe(node.Declaration()))
			}
		}
	}
	return nil
}
