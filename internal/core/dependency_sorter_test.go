package core

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema205/internal/nodes"
	"schema205/internal/types"
)

func simpleType(name string) types.TypeDescriptor {
	return types.TypeDescriptor{Kind: types.TypeKindSimple, Raw: name, Name: name}
}

func childNames(d nodes.Declaration) []string {
	var names []string
	for _, c := range d.Children() {
		names = append(names, c.Name())
	}
	return names
}

func TestSortDeclarationsMovesReferencedFirst(t *testing.T) {
	ns := nodes.NewNamespace(nil, "rs_ns")
	outer := nodes.NewStruct(ns, "Outer", "", types.RoleNone)
	nodes.NewDataElement(outer, "inner", simpleType("rs_ns::Inner"), true)
	nodes.NewStruct(ns, "Unrelated", "", types.RoleNone)
	inner := nodes.NewStruct(ns, "Inner", "", types.RoleNone)
	nodes.NewDataElement(inner, "kind", simpleType("rs_ns::Kind"), false)
	nodes.NewEnumeration(ns, "Kind", nil)

	require.NoError(t, SortDeclarations(context.Background(), ns))
	assert.Equal(t, []string{"Unrelated", "Kind", "Inner", "Outer"}, childNames(ns))
}

func TestSortDeclarationsKeepsOrderWithoutConstraints(t *testing.T) {
	ns := nodes.NewNamespace(nil, "rs_ns")
	for _, name := range []string{"C", "A", "B"} {
		nodes.NewStruct(ns, name, "", types.RoleNone)
	}
	require.NoError(t, SortDeclarations(context.Background(), ns))
	assert.Equal(t, []string{"C", "A", "B"}, childNames(ns))
}

func TestSortDeclarationsMatchesWholeWords(t *testing.T) {
	ns := nodes.NewNamespace(nil, "rs_ns")
	user := nodes.NewStruct(ns, "User", "", types.RoleNone)
	nodes.NewDataElement(user, "m", simpleType("rs_ns::PerformanceMap"), true)
	nodes.NewStruct(ns, "Performance", "", types.RoleNone)

	require.NoError(t, SortDeclarations(context.Background(), ns))
	assert.Equal(t, []string{"User", "Performance"}, childNames(ns))
}

func TestSortDeclarationsDetectsCycles(t *testing.T) {
	ns := nodes.NewNamespace(nil, "rs_ns")
	a := nodes.NewStruct(ns, "A", "", types.RoleNone)
	nodes.NewDataElement(a, "b", simpleType("B"), true)
	b := nodes.NewStruct(ns, "B", "", types.RoleNone)
	nodes.NewDataElement(b, "a", simpleType("A"), true)
	nodes.NewStruct(ns, "C", "", types.RoleNone)

	err := SortDeclarations(context.Background(), ns)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "A, B")
	assert.Equal(t, []string{"A", "B", "C"}, childNames(ns), "failed sort leaves the tree untouched")
}

func TestSortIgnoresSelfMentionAndUnnamedNodes(t *testing.T) {
	ns := nodes.NewNamespace(nil, "rs_ns")
	grid := nodes.NewStruct(ns, "Grid", "", types.RoleGridVariables)
	nodes.NewCounterEnum(grid, []string{"x"})
	nodes.NewDataElement(grid, "next", simpleType("Grid*"), false)

	require.NoError(t, SortDeclarations(context.Background(), ns))
	require.NoError(t, SortDeclarations(context.Background(), grid))
	assert.Equal(t, []string{"Grid"}, childNames(ns))
}
