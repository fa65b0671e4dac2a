package core

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"schema205/internal/nodes"
	"schema205/internal/shared"
	"schema205/internal/types"
)

const (
	DefaultRootBaseClass = "RSInstanceBase"
	GridVariablesBase    = "GridVariablesBase"
	LookupVariablesBase  = "LookupVariablesBase"
	PerformanceMapBase   = "PerformanceMapBase"

	loggerType            = "std::shared_ptr<Courierr::Courierr>"
	interpolationArgument = "Btwxt::InterpolationMethod performance_interpolation_method = Btwxt::InterpolationMethod::linear"
)

// standardIncludes follow the reference includes in every header.
var standardIncludes = []string{
	"string",
	"vector",
	"nlohmann/json.hpp",
	"typeinfo_205.h",
	"courierr/courierr.h",
}

type DeclarationOptions struct {
	// Container is the outer namespace; empty omits it, as does a schema
	// named like the container.
	Container string
	// RootBaseClass is the superclass of the schema's root data group.
	RootBaseClass string
}

// Declarations is the finished declaration tree of one schema.
type Declarations struct {
	// Top is the container namespace, nil when no container is used.
	Top *nodes.Namespace
	// Namespace is the schema's own namespace.
	Namespace *nodes.Namespace
	// RootGroup names the struct that plays the root role or holds the
	// logger.
	RootGroup string
	Header    *Preamble
}

// Root is the outermost node of the tree.
func (d Declarations) Root() nodes.Declaration {
	if d.Top != nil {
		return d.Top
	}
	return d.Namespace
}

// DeclarationBuilder builds the declaration tree of one schema in a fixed
// pass order: typedefs, enumerations, meta, groups, then ordering,
// performance overloads and serialization declarations.
type DeclarationBuilder struct {
	catalog  *Catalog
	schema   types.Schema
	resolver TypeResolver
	opts     DeclarationOptions
}

func NewDeclarationBuilder(catalog *Catalog, schema types.Schema, opts DeclarationOptions) DeclarationBuilder {
	if opts.RootBaseClass == "" {
		opts.RootBaseClass = DefaultRootBaseClass
	}
	return DeclarationBuilder{
		catalog:  catalog,
		schema:   schema,
		resolver: NewTypeResolver(catalog, schema),
		opts:     opts,
	}
}

// Build constructs the tree. Include lines needed by the header are added
// to header, which is also returned on the result.
func (b DeclarationBuilder) Build(ctx context.Context, header *Preamble) (Declarations, error) {
	assert.NotEmpty(ctx, b.schema.Name, "schema name must be set")

	for _, ref := range b.schema.References() {
		header.Include(shared.HeaderName(ref))
	}
	for _, inc := range standardIncludes {
		header.Include(inc)
	}

	result := Declarations{Header: header}
	// The container schema itself is not nested in its own container.
	if b.opts.Container != "" && b.opts.Container != b.schema.Name {
		result.Top = nodes.NewNamespace(nil, b.opts.Container)
	}
	var parent nodes.Declaration
	if result.Top != nil {
		parent = result.Top
	}
	ns := nodes.NewNamespace(parent, shared.Namespace(b.schema.Name))
	result.Namespace = ns

	for _, obj := range b.schema.ObjectsOfType(types.ObjectTypeStringType) {
		nodes.NewTypedef(ns, obj.Name, "std::string")
	}
	enums := map[string]*nodes.Enumeration{}
	for _, obj := range b.schema.ObjectsOfType(types.ObjectTypeEnumeration) {
		enums[obj.Name] = nodes.NewEnumeration(ns, obj.Name, obj.Enumerators)
	}
	for _, obj := range b.schema.ObjectsOfType(types.ObjectTypeMeta) {
		s := nodes.NewStruct(ns, obj.Name, "", types.RoleNone)
		prefix := strings.ToLower(obj.Name)
		nodes.NewStaticMetaInfo(s, prefix+"_title", obj.Meta.Title)
		nodes.NewStaticMetaInfo(s, prefix+"_version", obj.Meta.Version)
		nodes.NewStaticMetaInfo(s, prefix+"_description", obj.Meta.Description)
	}

	result.RootGroup = b.rootGroup()
	if _, ok := b.groupNamed(result.RootGroup); !ok {
		holder := nodes.NewStruct(ns, result.RootGroup, "", types.RoleNone)
		nodes.NewStoredDependency(holder, "logger", loggerType)
	}

	groups := b.schema.Groups()
	for _, group := range groups {
		if err := b.buildGroup(ns, group, group.Name == result.RootGroup, header); err != nil {
			return Declarations{}, err
		}
	}
	log.Ctx(ctx).Debug().
		Str("schema", b.schema.Name).
		Int("groups", len(groups)).
		Msg("group declarations built")

	if err := SortDeclarations(ctx, ns); err != nil {
		return Declarations{}, err
	}
	b.addPerformanceOverloads(ctx, ns)

	for _, obj := range b.schema.ObjectsOfType(types.ObjectTypeEnumeration) {
		nodes.NewEnumSerialization(ns, enums[obj.Name])
	}
	for _, group := range groups {
		nodes.NewSerializationDeclaration(ns, group.Name)
	}
	return result, nil
}

// rootGroup is the Root Data Group when it names a group of this schema,
// otherwise the schema's own name.
func (b DeclarationBuilder) rootGroup() string {
	if meta, ok := b.schema.Meta(); ok {
		if _, ok := b.groupNamed(meta.Meta.RootDataGroup); ok {
			return meta.Meta.RootDataGroup
		}
	}
	return b.schema.Name
}

func (b DeclarationBuilder) groupNamed(name string) (types.Object, bool) {
	obj, ok := b.schema.Lookup(name)
	if !ok || !obj.Type.IsGroup() {
		return types.Object{}, false
	}
	return obj, true
}

func (b DeclarationBuilder) buildGroup(ns *nodes.Namespace, group types.Object, root bool, header *Preamble) error {
	role := types.RoleForObjectType(group.Type)
	if root {
		role = types.RoleRoot
	}
	var s *nodes.Struct
	switch role {
	case types.RoleRoot:
		s = nodes.NewStruct(ns, group.Name, b.opts.RootBaseClass, role)
	case types.RoleGridVariables:
		s = nodes.NewStruct(ns, group.Name, GridVariablesBase, role)
	case types.RoleLookupVariables:
		s = nodes.NewLookupStruct(ns, group.Name, LookupVariablesBase)
	case types.RolePerformanceMap:
		s = nodes.NewStruct(ns, group.Name, PerformanceMapBase, role)
	default:
		s = nodes.NewStruct(ns, group.Name, "", types.RoleNone)
	}
	if s.Superclass != "" {
		header.Include(shared.HeaderName(s.Superclass))
	}
	addOverrides(s)
	if root {
		nodes.NewStoredDependency(s, "logger", loggerType)
	}
	if s.Role == types.RoleGridVariables {
		names := make([]string, 0, len(group.DataElements))
		for _, de := range group.DataElements {
			names = append(names, de.Name)
		}
		nodes.NewCounterEnum(s, names)
	}

	for _, de := range group.DataElements {
		desc, err := b.resolver.Resolve(group, de)
		if err != nil {
			return err
		}
		switch desc.Kind {
		case types.TypeKindSelector:
			header.Include(shared.HeaderName(SelectorBase(de.Name)))
		case types.TypeKindNested:
			header.Include(shared.HeaderName(desc.SubValue))
		}
		nodes.NewDataElement(s, de.Name, desc, de.Required)
	}
	for _, de := range group.DataElements {
		nodes.NewIsSetFlag(s, de.Name)
	}
	for _, de := range group.DataElements {
		nodes.NewStaticMetaInfo(s, de.Name+"_units", de.Units)
	}
	for _, de := range group.DataElements {
		nodes.NewStaticMetaInfo(s, de.Name+"_description", de.Description)
	}
	for _, de := range group.DataElements {
		nodes.NewStaticMetaInfo(s, de.Name+"_name", de.Name)
	}
	return nil
}

// addOverrides declares the virtual functions of the struct's base role.
func addOverrides(s *nodes.Struct) {
	switch s.Role {
	case types.RoleRoot, types.RolePerformanceMap:
		nodes.NewFunctionDeclaration(s, nodes.FunctionOverride, "void", "initialize", "const nlohmann::json& j")
	case types.RoleGridVariables, types.RoleLookupVariables:
		nodes.NewFunctionDeclaration(s, nodes.FunctionOverride, "void", "populate_performance_map",
			"PerformanceMapBase* performance_map")
	}
}

// addPerformanceOverloads gives each performance map a typed
// calculate_performance overload built from its sibling grid and lookup
// variables. Siblings are matched by the name left after stripping the
// role prefix, so PerformanceMapCooling pairs with GridVariablesCooling
// and LookupVariablesCooling.
func (b DeclarationBuilder) addPerformanceOverloads(ctx context.Context, ns *nodes.Namespace) {
	structs := nodes.Structs(ns)
	for _, pm := range structs {
		if pm.Role != types.RolePerformanceMap {
			continue
		}
		suffix := strings.TrimPrefix(pm.Name(), "PerformanceMap")
		grid := siblingWithRole(structs, types.RoleGridVariables, "GridVariables", suffix)
		lookup := siblingWithRole(structs, types.RoleLookupVariables, "LookupVariables", suffix)
		if grid == nil || lookup == nil {
			log.Ctx(ctx).Warn().
				Str("schema", b.schema.Name).
				Str("performance_map", pm.Name()).
				Bool("grid_variables", grid != nil).
				Bool("lookup_variables", lookup != nil).
				Msg("no matching sibling groups; calculate_performance overload skipped")
			continue
		}
		var args, names []string
		for _, de := range nodes.DataElements(grid) {
			args = append(args, "double "+de.Name())
			names = append(names, de.Name())
		}
		args = append(args, interpolationArgument)
		fn := nodes.NewFunctionDeclaration(pm, nodes.FunctionPerformanceOverload,
			lookup.ProjectionName(), "calculate_performance", args...)
		fn.UsingBase = PerformanceMapBase
		fn.ArgNames = names
		fn.Lookup = lookup
	}
}

func siblingWithRole(structs []*nodes.Struct, role types.BaseRole, prefix, suffix string) *nodes.Struct {
	for _, s := range structs {
		if s.Role == role && strings.TrimPrefix(s.Name(), prefix) == suffix {
			return s
		}
	}
	return nil
}
