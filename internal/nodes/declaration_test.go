package nodes

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema205/internal/types"
)

func numeric() types.TypeDescriptor {
	return types.TypeDescriptor{Kind: types.TypeKindSimple, Raw: "Numeric", Name: "double"}
}

func TestEnumerationRenderAppendsUnknown(t *testing.T) {
	ns := NewNamespace(nil, "rs0001_ns")
	enum := NewEnumeration(ns, "Kind", []types.Enumerator{
		{Value: "VALUE_A", DisplayText: "Value A", Description: "First"},
		{Value: "VALUE_B"},
	})

	assert.Equal(t, []string{"VALUE_A", "VALUE_B", "UNKNOWN"}, enum.Values())

	want := "\tenum class Kind {\n" +
		"\t\tVALUE_A,\n" +
		"\t\tVALUE_B,\n" +
		"\t\tUNKNOWN\n" +
		"\t};\n" +
		"\tconst static std::unordered_map<Kind, enum_info> Kind_info {\n" +
		"\t\t{Kind::VALUE_A, {\"VALUE_A\", \"Value A\", \"First\"}},\n" +
		"\t\t{Kind::VALUE_B, {\"VALUE_B\", \"VALUE_B\", \"\"}},\n" +
		"\t\t{Kind::UNKNOWN, {\"UNKNOWN\", \"None\", \"None\"}}\n" +
		"\t};"
	if diff := cmp.Diff(want, enum.Render()); diff != "" {
		t.Fatalf("enumeration mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumSerializationListsUnknownFirst(t *testing.T) {
	enum := NewEnumeration(nil, "Kind", []types.Enumerator{{Value: "A"}, {Value: "B"}})
	ser := NewEnumSerialization(nil, enum)

	assert.Equal(t, []string{"UNKNOWN", "A", "B"}, ser.Values())
	want := "NLOHMANN_JSON_SERIALIZE_ENUM(Kind, {\n" +
		"\t{Kind::UNKNOWN, \"UNKNOWN\"},\n" +
		"\t{Kind::A, \"A\"},\n" +
		"\t{Kind::B, \"B\"},\n" +
		"})"
	assert.Equal(t, want, ser.Render())
}

func TestStructRender(t *testing.T) {
	s := NewStruct(nil, "Foo", "RSInstanceBase", types.RoleRoot)
	NewFunctionDeclaration(s, FunctionOverride, "void", "initialize", "const nlohmann::json& j")
	NewDataElement(s, "a", numeric(), true)
	NewIsSetFlag(s, "a")
	NewStaticMetaInfo(s, "a_units", "W")
	NewStoredDependency(s, "logger", "std::shared_ptr<Courierr::Courierr>")

	want := "class Foo : public RSInstanceBase {\n" +
		"public:\n" +
		"\tvoid initialize(const nlohmann::json& j) override;\n" +
		"\tdouble a;\n" +
		"\tbool a_is_set;\n" +
		"\tconst static std::string_view a_units;\n" +
		"\tstatic std::shared_ptr<Courierr::Courierr> logger;\n" +
		"};"
	if diff := cmp.Diff(want, s.Render()); diff != "" {
		t.Fatalf("struct mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "class Foo", s.Signature())
}

func TestLookupStructRendersProjection(t *testing.T) {
	s := NewLookupStruct(nil, "LookupVariables", "LookupVariablesBase")
	NewDataElement(s, "capacity", types.TypeDescriptor{
		Kind: types.TypeKindArray,
		Raw:  "[Numeric]",
		Elem: &types.TypeDescriptor{Kind: types.TypeKindSimple, Raw: "Numeric", Name: "double"},
	}, true)

	want := "struct LookupVariables : public LookupVariablesBase {\n" +
		"\tstd::vector<double> capacity;\n" +
		"};\n" +
		"struct LookupVariablesStruct {\n" +
		"\tdouble capacity;\n" +
		"};"
	assert.Equal(t, want, s.Render())
	assert.True(t, s.IsLookup())
	assert.Equal(t, types.RoleLookupVariables, s.Role)
}

func TestCounterEnumKeepsMemberOrder(t *testing.T) {
	c := NewCounterEnum(nil, []string{"m1", "m2", "m3"})
	assert.Equal(t, []string{"m1_index", "m2_index", "m3_index", "index_count"}, c.Enumerants)
	assert.Equal(t, "enum {\n\tm1_index,\n\tm2_index,\n\tm3_index,\n\tindex_count\n};", c.Render())
}

func TestPerformanceOverloadDeclaration(t *testing.T) {
	f := NewFunctionDeclaration(nil, FunctionPerformanceOverload, "LookupVariablesStruct", "calculate_performance",
		"double temperature",
		"Btwxt::InterpolationMethod performance_interpolation_method = Btwxt::InterpolationMethod::linear")
	f.UsingBase = "PerformanceMapBase"

	want := "using PerformanceMapBase::calculate_performance;\n" +
		"LookupVariablesStruct calculate_performance(double temperature, " +
		"Btwxt::InterpolationMethod performance_interpolation_method = Btwxt::InterpolationMethod::linear);"
	assert.Equal(t, want, f.Render())
}

func TestReorderChildren(t *testing.T) {
	ns := NewNamespace(nil, "ns")
	a := NewTypedef(ns, "A", "std::string")
	b := NewTypedef(ns, "B", "std::string")

	require.NoError(t, ReorderChildren(ns, []Declaration{b, a}))
	assert.Equal(t, []Declaration{b, a}, ns.Children())

	foreign := NewTypedef(nil, "C", "std::string")
	err := ReorderChildren(ns, []Declaration{b, foreign})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))

	err = ReorderChildren(ns, []Declaration{b})
	require.Error(t, err)
}

func TestAppenderRejectsAttachedNodes(t *testing.T) {
	ns := NewNamespace(nil, "ns")
	attached := NewTypedef(ns, "A", "std::string")
	app := NewAppender(ns)

	err := app.Append(attached)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	require.NoError(t, app.Append(NewTypedef(nil, "B", "std::string")))
	assert.Len(t, ns.Children(), 2)
	assert.Equal(t, Declaration(ns), ns.Children()[1].Parent())
}

func TestSnapshotDetectsReorderButAllowsAppend(t *testing.T) {
	ns := NewNamespace(nil, "ns")
	a := NewTypedef(ns, "A", "std::string")
	b := NewTypedef(ns, "B", "std::string")

	snap := SnapshotDeclarations(ns)
	require.NoError(t, NewAppender(ns).Append(NewTypedef(nil, "C", "std::string")))
	require.NoError(t, snap.Verify())

	snap = SnapshotDeclarations(ns)
	require.NoError(t, ReorderChildren(ns, []Declaration{b, a, ns.Children()[2]}))
	err := snap.Verify()
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestWalkAndDepth(t *testing.T) {
	outer := NewNamespace(nil, "tk205")
	inner := NewNamespace(outer, "rs0001_ns")
	s := NewStruct(inner, "Foo", "", types.RoleNone)
	de := NewDataElement(s, "a", numeric(), false)

	assert.Equal(t, 3, Depth(de))
	var names []string
	Walk(outer, func(d Declaration) bool {
		names = append(names, d.Name())
		return d != Declaration(s)
	})
	assert.Equal(t, []string{"tk205", "rs0001_ns", "Foo"}, names)
	assert.Equal(t, []*DataElement{de}, DataElements(s))
	assert.Equal(t, []*Struct{s}, Structs(inner))
}
