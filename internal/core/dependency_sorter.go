package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"

	"schema205/internal/nodes"
	"schema205/internal/shared"
)

// SortDeclarations reorders the children of parent so that a declaration
// comes after every sibling whose name it mentions, in its own signature
// or in any descendant's. Siblings with no constraint between them keep
// their original relative order. A reference cycle is an error.
func SortDeclarations(ctx context.Context, parent nodes.Declaration) error {
	children := parent.Children()
	order, err := dependencyOrder(children)
	if err != nil {
		return err
	}
	sorted := make([]nodes.Declaration, 0, len(children))
	for _, i := range order {
		sorted = append(sorted, children[i])
	}
	log.Ctx(ctx).Debug().
		Str("scope", parent.Name()).
		Int("declarations", len(sorted)).
		Msg("declarations ordered")
	return nodes.ReorderChildren(parent, sorted)
}

// Mentions collects the whole-word identifiers in the signatures of d and
// all of its descendants.
func Mentions(d nodes.Declaration) map[string]bool {
	refs := map[string]bool{}
	nodes.Walk(d, func(n nodes.Declaration) bool {
		for _, id := range shared.Identifiers(n.Signature()) {
			refs[id] = true
		}
		return true
	})
	return refs
}

// dependencyOrder is Kahn's algorithm over sibling indices; when several
// declarations are ready the lowest original index goes first.
func dependencyOrder(children []nodes.Declaration) ([]int, error) {
	n := len(children)
	indeg := make([]int, n)
	out := make([][]int, n)
	for i, child := range children {
		refs := Mentions(child)
		for j, dep := range children {
			if j == i || dep.Name() == "" || !refs[dep.Name()] {
				continue
			}
			indeg[i]++
			out[j] = append(out[j], i)
		}
	}

	var ready btree.Set[int]
	for i := range n {
		if indeg[i] == 0 {
			ready.Insert(i)
		}
	}
	order := make([]int, 0, n)
	for ready.Len() > 0 {
		i, _ := ready.PopMin()
		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				ready.Insert(j)
			}
		}
	}

	if len(order) != n {
		var cycle []string
		for i, d := range indeg {
			if d > 0 {
				cycle = append(cycle, children[i].Name())
			}
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("declaration cycle detected involving: " + strings.Join(cycle, ", "))
	}
	return order, nil
}
