package plugins

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema205/internal/nodes"
	"schema205/internal/types"
)

// fakePlugin appends a marker member to every target and, optionally,
// misbehaves by reversing the target's children.
type fakePlugin struct {
	name      string
	role      types.BaseRole
	reorder   bool
	declCalls *int
	implCalls *int
}

func (p fakePlugin) Name() string         { return p.name }
func (p fakePlugin) Role() types.BaseRole { return p.role }

func (p fakePlugin) ExtendDeclarations(target *nodes.Struct, appender nodes.Appender) error {
	if p.declCalls != nil {
		*p.declCalls++
	}
	if p.reorder {
		children := target.Children()
		for i, j := 0, len(children)-1; i < j; i, j = i+1, j-1 {
			children[i], children[j] = children[j], children[i]
		}
		return nodes.ReorderChildren(target, children)
	}
	return appender.Append(nodes.NewStaticMetaInfo(nil, p.name+"_marker", p.name))
}

func (p fakePlugin) ExtendImplementations(owner *nodes.Struct, appender nodes.ImplAppender) error {
	if p.implCalls != nil {
		*p.implCalls++
	}
	marker := nodes.NewStaticMetaInfo(nil, p.name+"_impl_marker", p.name)
	return appender.Append(nodes.NewStaticMemberDefinition(nil, marker, owner))
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(fakePlugin{name: "b", role: types.RoleGridVariables}))
	require.NoError(t, r.Register(fakePlugin{name: "a", role: types.RoleGridVariables}))

	err := r.Register(fakePlugin{name: "a", role: types.RolePerformanceMap})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))

	err = r.Register(fakePlugin{name: "root", role: types.RoleRoot})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	assert.Equal(t, []string{"a", "b"}, r.Names())
	got := r.ForRole(types.RoleGridVariables)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Name(), "registration order is kept per role")
	assert.Empty(t, r.ForRole(types.RoleLookupVariables))
}

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(fakePlugin{name: "grid", role: types.RoleGridVariables}))
	require.NoError(t, r.Register(fakePlugin{name: "map", role: types.RolePerformanceMap}))

	all, err := r.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"grid", "map"}, all.Names())

	only, err := r.Select([]string{"map"})
	require.NoError(t, err)
	assert.Equal(t, []string{"map"}, only.Names())
	assert.Empty(t, only.ForRole(types.RoleGridVariables))

	_, err = r.Select([]string{"missing"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestRegisterPanicsOnInvalidPlugin(t *testing.T) {
	assert.Panics(t, func() {
		Register(fakePlugin{name: "", role: types.RoleGridVariables})
	})
}

func TestLoaderApply(t *testing.T) {
	ns := nodes.NewNamespace(nil, "rs_ns")
	grid := nodes.NewStruct(ns, "GridVariables", "GridVariablesBase", types.RoleGridVariables)
	nodes.NewDataElement(grid, "x", types.TypeDescriptor{Kind: types.TypeKindSimple, Name: "double"}, true)
	populate := nodes.NewFunctionDeclaration(grid, nodes.FunctionOverride, "void", "populate_performance_map",
		"PerformanceMapBase* performance_map")
	plain := nodes.NewStruct(ns, "Plain", "", types.RoleNone)

	impl := nodes.NewImplNamespace(nil, ns)
	nodes.NewFunctionDefinition(impl, populate, grid)

	declCalls, implCalls := 0, 0
	r := NewRegistry()
	require.NoError(t, r.Register(fakePlugin{
		name: "marker", role: types.RoleGridVariables, declCalls: &declCalls, implCalls: &implCalls,
	}))

	require.NoError(t, NewLoader(r).Apply(context.Background(), ns, impl))
	assert.Equal(t, 1, declCalls)
	assert.Equal(t, 1, implCalls)
	assert.Equal(t, "marker_marker", grid.Children()[2].Name())
	assert.Empty(t, plain.Children())
}

func TestLoaderRejectsReorderingPlugin(t *testing.T) {
	ns := nodes.NewNamespace(nil, "rs_ns")
	pm := nodes.NewStruct(ns, "PerformanceMap", "PerformanceMapBase", types.RolePerformanceMap)
	nodes.NewFunctionDeclaration(pm, nodes.FunctionOverride, "void", "initialize", "const nlohmann::json& j")
	nodes.NewDataElement(pm, "x", types.TypeDescriptor{Kind: types.TypeKindSimple, Name: "double"}, true)

	r := NewRegistry()
	require.NoError(t, r.Register(fakePlugin{name: "shuffle", role: types.RolePerformanceMap, reorder: true}))

	err := NewLoader(r).Apply(context.Background(), ns, nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "shuffle")
}
