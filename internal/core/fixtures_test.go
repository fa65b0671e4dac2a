package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"schema205/internal/types"
)

// memoryLoader serves schemas by name; a schema's path is its name.
type memoryLoader map[string]types.Schema

func (l memoryLoader) LoadSchema(path string) (types.Schema, error) {
	schema, ok := l[path]
	if !ok {
		return types.Schema{}, errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("no schema " + path)
	}
	schema.Path = path
	return schema, nil
}

func (l memoryLoader) ResolveReference(_ string, identifier string) (string, error) {
	if _, ok := l[identifier]; !ok {
		return "", errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("no schema " + identifier)
	}
	return identifier, nil
}

func metaObject(title, version, root string, refs ...string) types.Object {
	return types.Object{
		Name: "Schema",
		Type: types.ObjectTypeMeta,
		Meta: types.SchemaMeta{
			Title:         title,
			Version:       version,
			Description:   title + " schema",
			References:    refs,
			RootDataGroup: root,
		},
	}
}

func dataType(name string) types.Object {
	return types.Object{Name: name, Type: types.ObjectTypeDataType}
}

func groupObject(name string, kind types.ObjectType, elems ...types.DataElement) types.Object {
	return types.Object{Name: name, Type: kind, DataElements: elems}
}

// commonSchema exports the fundamental types, the Kind enumeration and the
// two groups Foo's selector can construct.
func commonSchema() types.Schema {
	return types.Schema{
		Name: "Common",
		Path: "Common",
		Objects: []types.Object{
			metaObject("Common", "1.0", ""),
			dataType("Integer"),
			dataType("Numeric"),
			dataType("String"),
			dataType("Boolean"),
			{
				Name: "Kind",
				Type: types.ObjectTypeEnumeration,
				Enumerators: []types.Enumerator{
					{Value: "VALUE_A", DisplayText: "Value A"},
					{Value: "VALUE_B", DisplayText: "Value B"},
				},
			},
			groupObject("ValueA", types.ObjectTypeDataGroup, types.DataElement{Name: "x", DataType: "Numeric"}),
			groupObject("ValueB", types.ObjectTypeDataGroup, types.DataElement{Name: "y", DataType: "Integer"}),
		},
	}
}

// fooSchema is the selector example: Foo holds a double, a discriminant and
// an owning pointer chosen by the discriminant.
func fooSchema() types.Schema {
	return types.Schema{
		Name: "RS0001",
		Path: "RS0001",
		Objects: []types.Object{
			metaObject("Foo", "1.2", "", "Common"),
			groupObject("Foo", types.ObjectTypeDataGroup,
				types.DataElement{Name: "a", DataType: "Numeric", Required: true, Units: "W", Description: "Capacity"},
				types.DataElement{Name: "kind", DataType: "<Kind>"},
				types.DataElement{Name: "b", DataType: "(ValueA, ValueB)", Constraints: []string{"kind(VALUE_A, VALUE_B)"}},
			),
		},
	}
}

// performanceSchema carries a root group and a complete performance map
// with its grid and lookup variables.
func performanceSchema() types.Schema {
	return types.Schema{
		Name: "RS0002",
		Path: "RS0002",
		Objects: []types.Object{
			metaObject("Unitary", "2.0", "RS0002", "Common"),
			{Name: "ModelName", Type: types.ObjectTypeStringType},
			groupObject("RS0002", types.ObjectTypeDataGroup,
				types.DataElement{Name: "model", DataType: "ModelName", Required: true},
				types.DataElement{Name: "performance", DataType: "{Performance}", Required: true},
			),
			groupObject("Performance", types.ObjectTypeDataGroup,
				types.DataElement{Name: "performance_map_cooling", DataType: "{PerformanceMapCooling}", Required: true},
			),
			groupObject("PerformanceMapCooling", types.ObjectTypePerformanceMap,
				types.DataElement{Name: "grid_variables", DataType: "{GridVariablesCooling}", Required: true},
				types.DataElement{Name: "lookup_variables", DataType: "{LookupVariablesCooling}", Required: true},
			),
			groupObject("GridVariablesCooling", types.ObjectTypeGridVariables,
				types.DataElement{Name: "temperature", DataType: "[Numeric]", Required: true, Units: "K"},
				types.DataElement{Name: "speed", DataType: "[Numeric]", Required: true},
			),
			groupObject("LookupVariablesCooling", types.ObjectTypeLookupVariables,
				types.DataElement{Name: "capacity", DataType: "[Numeric]", Required: true, Units: "W"},
				types.DataElement{Name: "stage", DataType: "[Integer]", Required: true},
			),
		},
	}
}

func testLoader() memoryLoader {
	return memoryLoader{
		"Common": commonSchema(),
		"RS0001": fooSchema(),
		"RS0002": performanceSchema(),
	}
}
