package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"schema205/internal/nodes"
	"schema205/internal/shared"
	"schema205/internal/types"
)

// Implementations is the implementation tree mirroring a Declarations tree.
type Implementations struct {
	// Top mirrors the container namespace; nil when it is omitted.
	Top       *nodes.ImplNamespace
	Namespace *nodes.ImplNamespace
	Source    *Preamble
}

func (i Implementations) Root() nodes.Implementation {
	if i.Top != nil {
		return i.Top
	}
	return i.Namespace
}

type ImplementationBuilder struct {
	catalog *Catalog
	schema  types.Schema
}

func NewImplementationBuilder(catalog *Catalog, schema types.Schema) ImplementationBuilder {
	return ImplementationBuilder{catalog: catalog, schema: schema}
}

// Build walks the finished, sorted declaration tree and defines every
// function and static member it declares. Include lines for the source
// file are added to source.
func (b ImplementationBuilder) Build(ctx context.Context, decls Declarations, source *Preamble) (Implementations, error) {
	if decls.Namespace == nil {
		return Implementations{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("declaration tree for " + b.schema.Name + " has no schema namespace")
	}
	source.Include(shared.HeaderName(b.schema.Name))

	result := Implementations{Source: source}
	var parent nodes.Implementation
	if decls.Top != nil {
		result.Top = nodes.NewImplNamespace(nil, decls.Top)
		parent = result.Top
	}
	ns := nodes.NewImplNamespace(parent, decls.Namespace)
	result.Namespace = ns

	structs := map[string]*nodes.Struct{}
	for _, s := range nodes.Structs(decls.Namespace) {
		structs[s.Name()] = s
	}

	definitions := 0
	for _, child := range decls.Namespace.Children() {
		switch d := child.(type) {
		case *nodes.Struct:
			definitions += b.defineMembers(ns, d, source)
		case *nodes.FunctionDeclaration:
			if d.Kind != nodes.FunctionSerialization {
				continue
			}
			target, ok := structs[d.Target]
			if !ok {
				return Implementations{}, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("from_json declared for unknown group " + d.Target)
			}
			def := nodes.NewFunctionDefinition(ns, d, nil)
			if hasInitialize(target) {
				nodes.NewInitializeDelegation(def)
			} else {
				b.fillFromJSON(def, target, source)
			}
			definitions++
		}
	}
	log.Ctx(ctx).Debug().
		Str("schema", b.schema.Name).
		Int("definitions", definitions).
		Msg("implementation tree built")
	return result, nil
}

// defineMembers emits the out-of-line definitions for one struct and
// returns how many function definitions it added.
func (b ImplementationBuilder) defineMembers(ns *nodes.ImplNamespace, s *nodes.Struct, source *Preamble) int {
	for _, child := range s.Children() {
		switch child.(type) {
		case *nodes.StaticMetaInfo, *nodes.StoredDependency:
			nodes.NewStaticMemberDefinition(ns, child, s)
		}
	}
	count := 0
	for _, fn := range nodes.Functions(s) {
		switch {
		case fn.Kind == nodes.FunctionOverride && fn.Name() == "initialize":
			def := nodes.NewFunctionDefinition(ns, fn, s)
			b.fillFromJSON(def, s, source)
		case fn.Kind == nodes.FunctionOverride && fn.Name() == "populate_performance_map":
			def := nodes.NewFunctionDefinition(ns, fn, s)
			fillPopulate(def, s)
		case fn.Kind == nodes.FunctionPerformanceOverload:
			def := nodes.NewFunctionDefinition(ns, fn, s)
			nodes.NewPerformanceOverloadBody(def, "s")
			nodes.NewReturnName(def, "s")
		default:
			continue
		}
		count++
	}
	return count
}

// fillFromJSON reads every data element of group. Performance maps then
// hand themselves to their grid and lookup members.
func (b ImplementationBuilder) fillFromJSON(def *nodes.FunctionDefinition, group *nodes.Struct, source *Preamble) {
	elems := nodes.DataElements(group)
	for _, elem := range elems {
		if elem.Descriptor.Kind == types.TypeKindSelector {
			source.Include(elem.Name() + "_factory.h")
			nodes.NewOwnedElementCreation(def, elem)
			continue
		}
		nodes.NewElementFetch(def, elem)
	}
	if group.Role != types.RolePerformanceMap {
		return
	}
	for _, elem := range elems {
		if b.isPerformanceVariables(elem.Descriptor) {
			nodes.NewPopulateDelegation(def, elem)
		}
	}
}

func fillPopulate(def *nodes.FunctionDefinition, s *nodes.Struct) {
	switch s.Role {
	case types.RoleGridVariables:
		for _, elem := range nodes.DataElements(s) {
			nodes.NewGridAxisAdd(def, elem)
		}
		nodes.NewGridFinalize(def)
	case types.RoleLookupVariables:
		for _, elem := range nodes.DataElements(s) {
			nodes.NewDataTableAdd(def, elem)
		}
	}
}

// isPerformanceVariables reports whether the member's type is a Grid
// Variables or Lookup Variables group anywhere in the catalog.
func (b ImplementationBuilder) isPerformanceVariables(desc types.TypeDescriptor) bool {
	if desc.Kind != types.TypeKindSimple || desc.Origin == "" {
		return false
	}
	name := desc.Name
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	obj, ok := b.catalog.Object(name)
	if !ok {
		return false
	}
	return obj.Type == types.ObjectTypeGridVariables || obj.Type == types.ObjectTypeLookupVariables
}

func hasInitialize(s *nodes.Struct) bool {
	for _, fn := range nodes.Functions(s) {
		if fn.Kind == nodes.FunctionOverride && fn.Name() == "initialize" {
			return true
		}
	}
	return false
}
